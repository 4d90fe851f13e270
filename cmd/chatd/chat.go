package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"chatd/internal/filectx"
	"chatd/internal/session"
	"chatd/internal/transcript"
	"chatd/pkg/types"
)

func buildChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive terminal chat against a local model",
		RunE:  runChat,
	}
	cmd.Flags().String("model", "", "Model id to load (defaults to --default-model)")
	cmd.Flags().StringArray("file", nil, "File to inject as conversation context (repeatable)")
	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	mgr := newManager(cfg, nil)
	defer mgr.Unload()

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = cfg.DefaultModel
	}
	if model == "" {
		models, lerr := mgr.ListModels()
		if lerr != nil {
			return lerr
		}
		fmt.Fprintln(os.Stderr, "no model selected; pass --model with one of:")
		for _, m := range models {
			fmt.Fprintf(os.Stderr, "  %s (%s GB)\n", m.ID, m.Size)
		}
		return fmt.Errorf("model is required")
	}

	files := filectx.New()
	paths, _ := cmd.Flags().GetStringArray("file")
	for _, p := range paths {
		if err := files.AddFile(p); err != nil {
			return err
		}
	}

	if _, err := mgr.Load(model); err != nil {
		return err
	}
	fmt.Printf("chatting with %s (ctrl-d or /quit to exit)\n", model)

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var conv transcript.Buffer
	in := bufio.NewScanner(os.Stdin)
	first := true
	for {
		fmt.Print("> ")
		if !in.Scan() {
			fmt.Println()
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			return nil
		}
		text := line
		if first && files.Len() > 0 {
			text = files.Contents() + line
		}
		first = false

		st, cerr := mgr.Chat(ctx, "", types.ChatTurn{Role: types.RoleUser, Text: text})
		if cerr != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", cerr)
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		conv.Append("> " + line + "\n")
		transcript.Drain(ctx, st, &conv, pollInterval(cfg), func(frag string) {
			fmt.Print(frag)
		})
		reason := settle(st, func(frag string) {
			conv.Append(frag)
			fmt.Print(frag)
		})
		conv.Append("\n")
		fmt.Println()
		switch reason {
		case session.FinishStop:
		case session.FinishCanceled:
			fmt.Println("[canceled]")
			if ctx.Err() != nil {
				return nil
			}
		case session.FinishContextExhausted:
			fmt.Println("[context window exhausted]")
		case session.FinishDecodeError:
			fmt.Fprintf(os.Stderr, "decode error: %v\n", st.Err())
		}
	}
}

// chatStream is the slice of *session.Stream the REPL consumes.
type chatStream interface {
	Recv() (string, bool)
	FinishReason() session.FinishReason
}

// settle consumes whatever the stream still holds after the poller stops,
// on Ctrl-C in particular, and waits for the worker to close it so the
// finish reason is final before it is read.
func settle(st chatStream, onFrag func(string)) session.FinishReason {
	for {
		frag, ok := st.Recv()
		if !ok {
			return st.FinishReason()
		}
		onFrag(frag)
	}
}
