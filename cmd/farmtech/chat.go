package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"farmtech/internal/chat"
	"farmtech/internal/config"
)

func runChatCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	return runChat(os.Stdin, cmd.OutOrStdout(), chat.NewMatcher(nil), cfg.ChatDelay)
}

// runChat drives one Exchange from line-oriented input until EOF or /quit.
func runChat(in io.Reader, out io.Writer, m *chat.Matcher, delay time.Duration) error {
	replies := make(chan chat.Message, 1)
	ex := chat.NewExchange(m, delay, func(msg chat.Message) { replies <- msg })
	defer ex.Close()

	ex.Open()
	fmt.Fprintf(out, "assistant> %s\n", (<-replies).Text)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "/quit" {
			return nil
		}
		if !ex.Send(line) {
			continue
		}
		if ex.Typing() {
			fmt.Fprintln(out, "assistant is typing...")
		}
		fmt.Fprintf(out, "assistant> %s\n", (<-replies).Text)
	}
}
