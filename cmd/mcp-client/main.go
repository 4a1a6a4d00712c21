package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mcp-client <server-command> [<args>]")
		fmt.Fprintln(os.Stderr, "Example: mcp-client ./travelbrowser mcp")
		os.Exit(2)
	}

	ctx := context.Background()

	// Start the server as a subprocess
	cmd := exec.Command(args[0], args[1:]...)
	transport := &mcp.CommandTransport{Command: cmd}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "travelbrowser-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer session.Close()

	fmt.Println("Connected to travelbrowser MCP Server!")
	fmt.Println("Available commands:")
	fmt.Println("  /tools                  - List available tools")
	fmt.Println("  /countries [asc|desc]   - List destination countries")
	fmt.Println("  /places <country> [asc|desc] - List the places of a country")
	fmt.Println("  /place <country> <name> - Show one place in full")
	fmt.Println("  /weather <country>      - Get the forecast for a country")
	fmt.Println("  /browse <action> [arg]  - Drive the carousel (state, forward, back, move N, sort asc, scroll N, select_country X)")
	fmt.Println("  /graph <cypher>         - Execute Cypher query")
	fmt.Println("  /exit                   - Exit the client")
	fmt.Println("  <question>              - Ask the guide")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		parts := strings.Fields(input)

		switch {
		case input == "/exit":
			fmt.Println("Goodbye!")
			return

		case input == "/tools":
			listTools(ctx, session)

		case parts[0] == "/countries":
			args := map[string]any{}
			if len(parts) > 1 {
				args["sort"] = parts[1]
			}
			callTool(ctx, session, "list_countries", args)

		case parts[0] == "/places" && len(parts) > 1:
			args := map[string]any{"country": parts[1]}
			if len(parts) > 2 {
				args["sort"] = parts[2]
			}
			callTool(ctx, session, "list_places", args)

		case parts[0] == "/place" && len(parts) > 2:
			callTool(ctx, session, "get_place", map[string]any{
				"country": parts[1],
				"name":    strings.Join(parts[2:], " "),
			})

		case parts[0] == "/weather" && len(parts) > 1:
			callTool(ctx, session, "get_weather", map[string]any{"country": parts[1]})

		case parts[0] == "/browse" && len(parts) > 1:
			callTool(ctx, session, "browse", browseArgs(parts[1], parts[2:]))

		case strings.HasPrefix(input, "/graph "):
			cypher := strings.TrimPrefix(input, "/graph ")
			callTool(ctx, session, "query_graph", map[string]any{
				"cypher": cypher,
			})

		case strings.HasPrefix(input, "/"):
			fmt.Printf("Unknown or incomplete command %q\n", parts[0])

		default:
			callTool(ctx, session, "ask_guide", map[string]any{
				"question": input,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Scanner error: %v", err)
	}
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("Available Tools:")
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			log.Printf("Error listing tools: %v", err)
			return
		}
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}
	fmt.Println()
}

func callTool(ctx context.Context, session *mcp.ClientSession, toolName string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		log.Printf("Error calling tool: %v", err)
		return
	}

	printResult(result)
}

// browseArgs maps "/browse move 3" style input onto the browse tool's
// arguments.
func browseArgs(action string, rest []string) map[string]any {
	args := map[string]any{"action": action}
	if len(rest) == 0 {
		return args
	}
	switch action {
	case "move":
		if n, err := strconv.Atoi(rest[0]); err == nil {
			args["index"] = n
		}
	case "scroll":
		if n, err := strconv.Atoi(rest[0]); err == nil {
			args["delta"] = n
		}
	case "sort":
		args["order"] = rest[0]
	case "select_country":
		if n, err := strconv.Atoi(rest[0]); err == nil {
			args["index"] = n
		} else {
			args["country"] = strings.Join(rest, " ")
		}
	}
	return args
}

func printResult(result *mcp.CallToolResult) {
	if result.IsError {
		fmt.Printf("❌ Error: ")
	} else {
		fmt.Printf("✅ Result: ")
	}

	// Try to pretty-print the content
	for _, content := range result.Content {
		switch v := content.(type) {
		case *mcp.TextContent:
			fmt.Println(v.Text)
		default:
			// Try JSON marshaling for other types
			jsonData, err := json.MarshalIndent(content, "", "  ")
			if err != nil {
				fmt.Printf("%+v\n", content)
			} else {
				fmt.Println(string(jsonData))
			}
		}
	}
	fmt.Println()
}
