package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/deskline-lab/vaani/pkg/cli/config"
	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/repository/memory"
	"github.com/deskline-lab/vaani/pkg/service/catalog"
	"github.com/deskline-lab/vaani/pkg/service/intent"
	"github.com/deskline-lab/vaani/pkg/service/sessionstore"
	"github.com/deskline-lab/vaani/pkg/usecase"
	"github.com/deskline-lab/vaani/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// cmdChat runs a local text conversation against an in-memory session,
// mainly for prompt and flow debugging.
func cmdChat() *cli.Command {
	var (
		sessionID     string
		utterance     string
		intentTimeout time.Duration

		llmCfg config.LLMCfg
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "session-id",
				Aliases:     []string{"i"},
				Usage:       "Session ID (random if not provided)",
				Destination: &sessionID,
			},
			&cli.StringFlag{
				Name:        "utterance",
				Aliases:     []string{"u"},
				Usage:       "Single utterance (if not provided, interactive mode will start)",
				Destination: &utterance,
			},
			&cli.DurationFlag{
				Name:        "intent-timeout",
				Usage:       "Deadline for one LLM intent resolution",
				Value:       5 * time.Second,
				Destination: &intentTimeout,
			},
		},
		llmCfg.Flags(),
	)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Talk to the receptionist locally",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			var primary interfaces.IntentResolver
			if llmCfg.IsConfigured() {
				llmClient, err := llmCfg.Configure(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to configure LLM client")
				}
				primary = intent.NewLLM(llmClient)
			} else {
				logger.Info("No LLM backend is configured, intent resolution is rule-based only")
			}

			cat, err := catalog.Default()
			if err != nil {
				return err
			}

			uc := usecase.New(
				sessionstore.New(memory.New()),
				cat,
				usecase.WithResolver(intent.New(primary, intent.WithTimeout(intentTimeout))),
			)

			if utterance != "" {
				result, err := uc.HandleTurn(ctx, usecase.TurnInput{
					SessionID: types.SessionID(sessionID),
					Utterance: utterance,
				})
				if err != nil {
					return goerr.Wrap(err, "failed to process utterance")
				}
				fmt.Println(result.Reply)
				return nil
			}

			return runInteractiveChat(ctx, uc, types.SessionID(sessionID))
		},
	}
}

func runInteractiveChat(ctx context.Context, uc *usecase.UseCases, id types.SessionID) error {
	logger := logging.From(ctx)

	fmt.Printf("💬 Session %s started. Type 'exit' or 'quit' to end.\n\n", id)

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		input, _, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				fmt.Println("\n👋 Session ended.")
				break
			}
			return goerr.Wrap(err, "failed to read input")
		}

		message := strings.TrimSpace(string(input))
		if message == "" {
			continue
		}

		if message == "exit" || message == "quit" {
			fmt.Println("👋 Session ended.")
			break
		}

		result, err := uc.HandleTurn(ctx, usecase.TurnInput{
			SessionID: id,
			Utterance: message,
		})
		if err != nil {
			fmt.Printf("❌ Error: %s\n", err.Error())
			logger.Error("turn error", "error", err)
			continue
		}

		fmt.Printf("%s\n\n", result.Reply)

		if result.Status.IsTerminal() {
			fmt.Println("👋 Session ended.")
			break
		}
	}

	return nil
}
