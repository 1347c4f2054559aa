// cmd/tools/toolcall/main.go
//
// toolcall is a small client for a running booking tool server. It lists the
// advertised tools or executes one with JSON arguments, useful for smoke
// testing without an LLM front end.
//
//	toolcall list -server http://localhost:8080
//	toolcall exec -server http://localhost:8080 -tool find_rooms_with_facilities \
//	    -args '{"query":"room with a whiteboard for 6 people"}'
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		runList(os.Args[2:])
	case "exec":
		runExec(os.Args[2:])
	case "help", "-h", "--help":
		help()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		help()
		os.Exit(1)
	}
}

func help() {
	fmt.Println("Usage:")
	fmt.Println("  toolcall list -server <url>")
	fmt.Println("  toolcall exec -server <url> -tool <name> -args '<json>'")
}

func newClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func runList(args []string) {
	fs := newFlagSet("list")
	server := fs.String("server", "http://localhost:8080", "Tool server base URL")
	fs.Parse(args)

	resp, err := newClient().Get(*server + "/mcp/tools")
	if err != nil {
		fatal("request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		fatal("decode response: %v", err)
	}

	for _, tool := range payload.Tools {
		fmt.Printf("%-40s %s\n", tool.Name, tool.Description)
	}
}

func runExec(args []string) {
	fs := newFlagSet("exec")
	server := fs.String("server", "http://localhost:8080", "Tool server base URL")
	tool := fs.String("tool", "", "Tool name to execute")
	rawArgs := fs.String("args", "{}", "Tool arguments as a JSON object")
	fs.Parse(args)

	if *tool == "" {
		fmt.Println("Error: -tool is required for exec.")
		fs.Usage()
		os.Exit(1)
	}

	var arguments map[string]interface{}
	if err := json.Unmarshal([]byte(*rawArgs), &arguments); err != nil {
		fatal("invalid -args JSON: %v", err)
	}

	body, err := json.Marshal(map[string]interface{}{
		"tool_name": *tool,
		"arguments": arguments,
	})
	if err != nil {
		fatal("encode request: %v", err)
	}

	resp, err := newClient().Post(*server+"/mcp/tools/execute", "application/json", bytes.NewReader(body))
	if err != nil {
		fatal("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		fatal("read response: %v", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
