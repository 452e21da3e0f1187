// Package main provides a command line remote control for the player API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"playdeck/internal/ui"
)

var (
	app    = kingpin.New("playdeck-remote", "Remote control for a running player")
	server = app.Flag("server", "Player API address").Default("http://localhost:8090").String()

	statusCmd = app.Command("status", "Show the current player state")

	playPauseCmd = app.Command("play-pause", "Toggle between play and pause")
	nextCmd      = app.Command("next", "Skip to the next track")
	previousCmd  = app.Command("previous", "Rewind or go to the previous track")

	selectCmd   = app.Command("select", "Select a track by index")
	selectIndex = selectCmd.Arg("index", "Track index (0-based)").Required().Int()

	seekCmd      = app.Command("seek", "Seek to a position in seconds")
	seekPosition = seekCmd.Arg("position", "Position in seconds").Required().Float64()

	watchCmd = app.Command("watch", "Stream state changes until interrupted")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	switch command {
	case statusCmd.FullCommand():
		printState(getState())
	case playPauseCmd.FullCommand():
		printState(control("play-pause", nil))
	case nextCmd.FullCommand():
		printState(control("next", nil))
	case previousCmd.FullCommand():
		printState(control("previous", nil))
	case selectCmd.FullCommand():
		printState(control("select", map[string]any{"index": *selectIndex}))
	case seekCmd.FullCommand():
		printState(control("seek", map[string]any{"position": *seekPosition}))
	case watchCmd.FullCommand():
		watch()
	}
}

func getState() ui.ViewModel {
	resp, err := http.Get(*server + "/api/v1/state")
	if err != nil {
		fail("Error: %v", err)
	}
	defer resp.Body.Close()

	return decodeState(resp)
}

func control(action string, body map[string]any) ui.ViewModel {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			fail("Error: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	resp, err := http.Post(*server+"/api/v1/control/"+action, "application/json", reader)
	if err != nil {
		fail("Error: %v", err)
	}
	defer resp.Body.Close()

	return decodeState(resp)
}

func decodeState(resp *http.Response) ui.ViewModel {
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		fail("Error: server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var vm ui.ViewModel
	if err := json.NewDecoder(resp.Body).Decode(&vm); err != nil {
		fail("Error: invalid response: %v", err)
	}
	return vm
}

func printState(vm ui.ViewModel) {
	if !vm.HasTracks {
		fmt.Println("Playlist is empty")
		return
	}

	marker := "⏸"
	if vm.Playing {
		marker = "▶️"
	}
	fmt.Printf("%s %s - %s [%s / %s]\n", marker, vm.Now.Artist, vm.Now.Title, vm.TimeCurrent, vm.TimeTotal)
	for _, row := range vm.Rows {
		active := " "
		if row.Active {
			active = ">"
		}
		fmt.Printf("  %s %2d  %s - %s (%s)\n", active, row.Index, row.Artist, row.Title, row.DurationLabel)
	}
}

// watch streams view models over the events websocket until interrupted.
func watch() {
	wsURL := strings.Replace(*server, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"/api/v1/events", nil)
	if err != nil {
		fail("Error: %v", err)
	}
	defer conn.Close()

	fmt.Println("Watching player state. Press Ctrl+C to exit.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		conn.Close()
	}()

	for {
		var vm ui.ViewModel
		if err := conn.ReadJSON(&vm); err != nil {
			return
		}
		if !vm.HasTracks {
			continue
		}
		marker := "⏸"
		if vm.Playing {
			marker = "▶️"
		}
		fmt.Printf("%s %s - %s [%s / %s]\n", marker, vm.Now.Artist, vm.Now.Title, vm.TimeCurrent, vm.TimeTotal)
	}
}

func fail(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
