package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
	out  io.Writer

	enc       *json.Encoder
	resources []ResourceView
	swiped    bool // a swipe is in flight; the next card must be acknowledged
}

// NewClient wraps an established connection. Input and output default to
// the terminal.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Client{conn: conn, in: bufio.NewReader(in), out: out, enc: json.NewEncoder(conn)}
}

// Connect dials a server and runs the REPL on the terminal.
func Connect(ctx context.Context, addr string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Println("Connected! Waiting for the first card...")
	return NewClient(conn, nil, nil).RunREPL(ctx)
}

// errQuit ends the REPL without an error.
var errQuit = errors.New("quit")

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	dec := json.NewDecoder(c.conn)
	var current *CardView
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		var err error
		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgResource:
			if r := msg.Resource; r != nil {
				fmt.Fprintf(c.out, "  %s %d → %d\n", r.Name, r.Old, r.Value)
			}

		case MsgResources:
			c.resources = msg.Resources

		case MsgShowCard:
			current = msg.Card
			if c.swiped {
				// Terminal play has no animation; the transition ends at once.
				c.swiped = false
				err = c.send(ClientMessage{Type: MsgAck})
				break
			}
			err = c.prompt(current)

		case MsgReady:
			err = c.prompt(current)

		case MsgError:
			fmt.Fprintf(c.out, "Error: %s\n", msg.Error)
			c.swiped = false
			err = c.prompt(current)

		case MsgGameOver:
			c.swiped = false
			c.renderGameOver(msg.Result)
			err = c.askRestart()
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Client) send(msg ClientMessage) error {
	if err := c.enc.Encode(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	kind := ev.Type
	for len(kind) < 16 {
		kind += " "
	}
	fmt.Fprintf(c.out, "R%-3d %s| %s\n", ev.Round, kind, ev.Details)
}

func (c *Client) renderResources() {
	parts := make([]string, 0, len(c.resources))
	for _, r := range c.resources {
		parts = append(parts, fmt.Sprintf("%s %d", r.Name, r.Value))
	}
	fmt.Fprintln(c.out, strings.Join(parts, " | "))
}

func (c *Client) renderCard(card *CardView) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(c.out, "║  %s\n", card.Title)
	if card.Description != "" {
		fmt.Fprintf(c.out, "║  %s\n", card.Description)
	}
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	fmt.Fprintf(c.out, "║  ← %s%s\n", card.Left.Label, formatAffects(card.Left.Affects))
	fmt.Fprintf(c.out, "║  → %s%s\n", card.Right.Label, formatAffects(card.Right.Affects))
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
}

func formatAffects(affects []string) string {
	if len(affects) == 0 {
		return ""
	}
	return " (" + strings.Join(affects, ", ") + ")"
}

func (c *Client) renderGameOver(result string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	fmt.Fprintln(c.out, "          GAME OVER")
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	fmt.Fprintln(c.out, result)
	c.renderResources()
	fmt.Fprintln(c.out, "═══════════════════════════════════")
}

// prompt shows the card and sends the player's swipe.
func (c *Client) prompt(card *CardView) error {
	if card == nil {
		return nil
	}
	c.renderResources()
	c.renderCard(card)
	for {
		fmt.Fprint(c.out, "Swipe [l]eft, [r]ight or [q]uit > ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return errQuit
		}
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "l", "left", "a", "n", "no":
			c.swiped = true
			return c.send(ClientMessage{Type: MsgSwipe, Right: false})
		case "r", "right", "d", "y", "yes":
			c.swiped = true
			return c.send(ClientMessage{Type: MsgSwipe, Right: true})
		case "q", "quit":
			_ = c.send(ClientMessage{Type: MsgQuit})
			return errQuit
		default:
			fmt.Fprintln(c.out, "Enter l or r")
		}
	}
}

func (c *Client) askRestart() error {
	for {
		fmt.Fprint(c.out, "Play again? (y/n): ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return errQuit
		}
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "y", "yes":
			return c.send(ClientMessage{Type: MsgRestart})
		case "n", "no":
			_ = c.send(ClientMessage{Type: MsgQuit})
			return errQuit
		default:
			fmt.Fprint(c.out, "Enter y or n: ")
		}
	}
}
