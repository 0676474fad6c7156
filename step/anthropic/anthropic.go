// Package anthropic provides step adapters backed by the Anthropic Messages
// API. The supervisor routes through a transfer_to_agent tool; workers run
// plain completions. Only the non-streaming path is supported.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/hupe1980/supervisorkit/core"
)

const transferToolName = "transfer_to_agent"

// Options configure the message parameters shared by both step adapters.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
}

// NewSupervisor builds a supervisor agent whose step calls the Messages API
// with a transfer_to_agent tool limited to workerNames. A tool_use block
// becomes a routing decision; text content becomes the final answer.
func NewSupervisor(client *anthropic.Client, name, instruction string, workerNames []string, optFns ...func(o *Options)) core.Agent {
	opts := resolveOptions(optFns)
	tool := transferTool(workerNames)

	return core.NewSupervisor(name, instruction, func(ctx context.Context, transcript core.Transcript) (*core.StepResult, error) {
		params := messageParams(opts, transcript, name, instruction)
		params.Tools = []anthropic.ToolUnionParam{tool}

		resp, err := client.Messages.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("anthropic api error: %w", err)
		}

		var text string
		for _, block := range resp.Content {
			switch block.Type {
			case "text":
				text += block.AsText().Text
			case "tool_use":
				toolBlock := block.AsToolUse()
				if toolBlock.Name != transferToolName {
					continue
				}
				args, err := json.Marshal(toolBlock.Input)
				if err != nil {
					return nil, fmt.Errorf("marshal %s input: %w", transferToolName, err)
				}
				target, reason, err := parseTransfer(args)
				if err != nil {
					return nil, err
				}
				return &core.StepResult{TransferTo: target, Reason: reason}, nil
			}
		}

		return &core.StepResult{Messages: []core.Message{core.NewAIMessage(name, text)}}, nil
	})
}

// NewWorker builds a worker agent whose step is a plain completion emitting
// one AI message per activation.
func NewWorker(client *anthropic.Client, name, instruction string, capabilities []string, optFns ...func(o *Options)) core.Agent {
	opts := resolveOptions(optFns)

	return core.NewWorker(name, instruction, func(ctx context.Context, transcript core.Transcript) (*core.StepResult, error) {
		resp, err := client.Messages.New(ctx, messageParams(opts, transcript, name, instruction))
		if err != nil {
			return nil, fmt.Errorf("anthropic api error: %w", err)
		}

		var text string
		for _, block := range resp.Content {
			if block.Type == "text" {
				text += block.AsText().Text
			}
		}
		return &core.StepResult{Messages: []core.Message{core.NewAIMessage(name, text)}}, nil
	}, capabilities...)
}

func resolveOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

func messageParams(opts Options, transcript core.Transcript, self, instruction string) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:       opts.Model,
		Messages:    buildMessages(transcript, self),
		MaxTokens:   opts.MaxTokens,
		Temperature: anthropic.Float(opts.Temperature),
	}
	if instruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: instruction}}
	}
	return params
}

func transferTool(workerNames []string) anthropic.ToolUnionParam {
	schema := anthropic.ToolInputSchemaParam{
		Type: constant.Object("object"),
		Properties: map[string]any{
			"agent": map[string]any{
				"type": "string",
				"enum": workerNames,
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "Short justification for the handoff",
			},
		},
		Required: []string{"agent"},
	}
	return anthropic.ToolUnionParamOfTool(schema, transferToolName)
}

func parseTransfer(arguments []byte) (target, reason string, err error) {
	var args struct {
		Agent  string `json:"agent"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return "", "", fmt.Errorf("parse %s arguments: %w", transferToolName, err)
	}
	if args.Agent == "" {
		return "", "", fmt.Errorf("%s call missing required field 'agent'", transferToolName)
	}
	return args.Agent, args.Reason, nil
}

// buildMessages converts the shared transcript from the perspective of the
// named agent. Own AI turns become assistant messages; everything else is
// attributed user context. The API rejects empty text blocks, so blank
// content is padded with a placeholder.
func buildMessages(transcript core.Transcript, self string) []anthropic.MessageParam {
	var messages []anthropic.MessageParam
	for _, m := range transcript {
		switch m.Kind {
		case core.KindHuman:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(nonEmpty(m.Content))))
		case core.KindAI:
			if m.Sender == self {
				messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(nonEmpty(m.Content))))
				continue
			}
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf("%s: %s", m.Sender, m.Content))))
		case core.KindHandoffRequest, core.KindHandoffResponse:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(renderHandoff(m))))
		}
	}
	return messages
}

func nonEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}

func renderHandoff(m core.Message) string {
	if m.Kind == core.KindHandoffResponse {
		return fmt.Sprintf("[control returned from %s to %s]", m.Sender, m.Recipient)
	}
	if m.Content == "" {
		return fmt.Sprintf("[control handed from %s to %s]", m.Sender, m.Recipient)
	}
	return fmt.Sprintf("[control handed from %s to %s: %s]", m.Sender, m.Recipient, m.Content)
}
