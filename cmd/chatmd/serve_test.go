package main

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	chatmdmcp "github.com/gorewood/chatmd/internal/mcp"
)

func TestServeCmd_Registered(t *testing.T) {
	root := newRootCmd()

	cmd, _, err := root.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("Find(serve) error = %v", err)
	}
	if cmd.Name() != "serve" {
		t.Fatalf("found %q, want serve", cmd.Name())
	}
	if cmd.GroupID != "agent" {
		t.Errorf("GroupID = %q, want %q", cmd.GroupID, "agent")
	}
	if cmd.RunE == nil {
		t.Error("RunE is nil")
	}
}

// The help text lists tools by hand; it must name every tool the server
// actually registers.
func TestServeCmd_HelpListsServerTools(t *testing.T) {
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := chatmdmcp.NewServer(buildVersion()).Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer func() { _ = serverSession.Close() }()

	client := mcp.NewClient(&mcp.Implementation{Name: "chatmd-test", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	result, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(result.Tools) == 0 {
		t.Fatal("server registered no tools")
	}

	_, list, ok := strings.Cut(newServeCmd().Long, "Available tools:")
	if !ok {
		t.Fatal("help text has no tool list")
	}
	listed := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		listed[strings.TrimSpace(name)] = true
	}

	for _, tool := range result.Tools {
		if !listed[tool.Name] {
			t.Errorf("help text does not list tool %q", tool.Name)
		}
		delete(listed, tool.Name)
	}
	for name := range listed {
		t.Errorf("help text lists %q, which the server does not register", name)
	}
}
