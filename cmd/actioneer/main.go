/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the actioneer CLI: it reads a batch of extracted
// action items and turns them into tickets, pull requests and reminders.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/actor"
	"github.com/meetingops/actioneer/chat"
	"github.com/meetingops/actioneer/gateway"
	"github.com/meetingops/actioneer/providers"
	"github.com/meetingops/actioneer/providers/githubprovider"
	"github.com/meetingops/actioneer/providers/linearprovider"
	"github.com/sethvargo/go-envconfig"
)

type config struct {
	// Completion service
	CompletionBackend     string `env:"COMPLETION_BACKEND,default=openai"`
	CompletionConcurrency int    `env:"COMPLETION_CONCURRENCY,default=2"`
	OpenAIAPIKey          string `env:"OPENAI_API_KEY"`
	OpenAIModel           string `env:"OPENAI_MODEL"`
	AnthropicAPIKey       string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel        string `env:"ANTHROPIC_MODEL"`

	// Task tracker
	LinearAPIKey string `env:"LINEAR_API_KEY"`
	LinearTeamID string `env:"LINEAR_TEAM_ID"`

	// Code host
	GitHubToken      string `env:"GITHUB_TOKEN"`
	GitHubRepo       string `env:"GITHUB_REPO"`
	GitHubBaseBranch string `env:"GITHUB_BASE_BRANCH,default=main"`

	// Chat
	SlackBotToken  string `env:"SLACK_BOT_TOKEN"`
	SlackChannelID string `env:"SLACK_CHANNEL_ID"`

	// Persona character sheet for announcement lines
	SoulFile string `env:"SOUL_FILE"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	adhoc := flag.String("adhoc", "", "execute a single free-text action instead of a batch file")
	threadTS := flag.String("thread", "", "chat thread timestamp to post into")
	flag.Parse()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	log := clog.FromContext(ctx)

	// Missing credentials degrade the corresponding capability; they
	// never abort the batch.
	gw := buildGateway(ctx, &cfg)
	deps := buildDeps(ctx, &cfg, gw)
	ectx := actor.ExecutionContext{
		Chat:     buildPoster(ctx, &cfg),
		Channel:  cfg.SlackChannelID,
		ThreadTS: *threadTS,
	}

	if *adhoc != "" {
		res, err := actor.ExecuteAdhoc(ctx, deps, *adhoc, ectx)
		if err != nil {
			clog.FatalContextf(ctx, "executing action: %v", err)
		}
		fmt.Printf("%s %s\n", res.Item.ID, res.Item.URL)
		return
	}

	items, err := readItems(flag.Arg(0))
	if err != nil {
		clog.FatalContextf(ctx, "reading items: %v", err)
	}
	log.With("items", len(items)).Info("Loaded action items")

	orch := actor.NewOrchestrator(actor.NewRouter(deps), buildPersona(ctx, &cfg, gw))
	result := orch.Orchestrate(ctx, items, ectx)

	renderResult(os.Stdout, result)
}

// readItems loads the action-item batch from a JSON file, or stdin when the
// path is empty or "-".
func readItems(path string) ([]actionitem.Item, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var items []actionitem.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	return items, nil
}

func buildGateway(ctx context.Context, cfg *config) *gateway.Gateway {
	log := clog.FromContext(ctx)

	var backend gateway.Completer
	var err error
	switch cfg.CompletionBackend {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Warn("ANTHROPIC_API_KEY not set, completion features disabled")
			return nil
		}
		backend, err = gateway.NewAnthropicBackend(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY not set, completion features disabled")
			return nil
		}
		backend, err = gateway.NewOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	if err != nil {
		clog.FatalContextf(ctx, "building completion backend: %v", err)
	}

	gw, err := gateway.New(backend, gateway.WithConcurrency(cfg.CompletionConcurrency))
	if err != nil {
		clog.FatalContextf(ctx, "building gateway: %v", err)
	}
	return gw
}

func buildDeps(ctx context.Context, cfg *config, gw *gateway.Gateway) *actor.Deps {
	log := clog.FromContext(ctx)

	var provs []providers.Provider
	deps := &actor.Deps{Gateway: gw}

	if cfg.LinearAPIKey != "" && cfg.LinearTeamID != "" {
		lp, err := linearprovider.New(cfg.LinearAPIKey, cfg.LinearTeamID)
		if err != nil {
			clog.FatalContextf(ctx, "building linear provider: %v", err)
		}
		provs = append(provs, lp)
	} else {
		log.Info("Linear not configured, task tracking disabled")
	}

	if cfg.GitHubToken != "" && cfg.GitHubRepo != "" {
		gp, err := githubprovider.New(ctx, cfg.GitHubToken, cfg.GitHubRepo,
			githubprovider.WithBaseBranch(cfg.GitHubBaseBranch))
		if err != nil {
			clog.FatalContextf(ctx, "building github provider: %v", err)
		}
		provs = append(provs, gp)
		deps.Repo = gp
		deps.Changes = gp
	} else {
		log.Info("GitHub not configured, auto-fix PRs disabled")
	}

	deps.Registry = providers.NewRegistry(ctx, provs...)
	return deps
}

func buildPoster(ctx context.Context, cfg *config) chat.Poster {
	if cfg.SlackBotToken == "" || cfg.SlackChannelID == "" {
		clog.FromContext(ctx).Info("Slack not configured, chat reporting disabled")
		return chat.NopPoster{}
	}
	poster, err := chat.NewSlackPoster(cfg.SlackBotToken)
	if err != nil {
		clog.FatalContextf(ctx, "building slack poster: %v", err)
	}
	return poster
}

func buildPersona(ctx context.Context, cfg *config, gw *gateway.Gateway) *chat.Persona {
	var soul string
	if cfg.SoulFile != "" {
		data, err := os.ReadFile(cfg.SoulFile)
		if err != nil {
			clog.FromContext(ctx).With("error", err.Error()).
				Warn("Could not read soul file, using plain announcements")
		} else {
			soul = string(data)
		}
	}
	if gw == nil {
		return chat.NewPersona(nil, soul)
	}
	return chat.NewPersona(gw, soul)
}
