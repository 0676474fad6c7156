// Package openai provides step adapters backed by the OpenAI Chat
// Completions API. Supervisor steps expose routing as a transfer_to_agent
// function tool restricted to the registered worker names; worker steps are
// plain completions that emit a single AI message per activation.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/supervisorkit/core"
)

const transferToolName = "transfer_to_agent"

// Options configure the chat completion parameters shared by both step
// adapters. Fields mirror a subset of the API intentionally kept minimal.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// NewSupervisor builds a supervisor agent whose step calls the Chat
// Completions API with a transfer_to_agent tool limited to workerNames. A
// tool call becomes a routing decision; plain text becomes the final answer.
func NewSupervisor(client *openai.Client, name, instruction string, workerNames []string, optFns ...func(o *Options)) core.Agent {
	opts := resolveOptions(optFns)
	tool := transferTool(workerNames)

	return core.NewSupervisor(name, instruction, func(ctx context.Context, transcript core.Transcript) (*core.StepResult, error) {
		params := completionParams(opts, buildMessages(transcript, name, instruction))
		params.Tools = []openai.ChatCompletionToolParam{tool}

		resp, err := client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("openai completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("openai completion returned no choices")
		}

		msg := resp.Choices[0].Message
		for _, tc := range msg.ToolCalls {
			if tc.Function.Name != transferToolName {
				continue
			}
			target, reason, err := parseTransfer(tc.Function.Arguments)
			if err != nil {
				return nil, err
			}
			return &core.StepResult{TransferTo: target, Reason: reason}, nil
		}

		return &core.StepResult{Messages: []core.Message{core.NewAIMessage(name, msg.Content)}}, nil
	})
}

// NewWorker builds a worker agent whose step is a plain completion emitting
// one AI message per activation.
func NewWorker(client *openai.Client, name, instruction string, capabilities []string, optFns ...func(o *Options)) core.Agent {
	opts := resolveOptions(optFns)

	return core.NewWorker(name, instruction, func(ctx context.Context, transcript core.Transcript) (*core.StepResult, error) {
		resp, err := client.Chat.Completions.New(ctx, completionParams(opts, buildMessages(transcript, name, instruction)))
		if err != nil {
			return nil, fmt.Errorf("openai completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("openai completion returned no choices")
		}
		return &core.StepResult{Messages: []core.Message{core.NewAIMessage(name, resp.Choices[0].Message.Content)}}, nil
	}, capabilities...)
}

func resolveOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

func completionParams(opts Options, messages []openai.ChatCompletionMessageParamUnion) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               opts.Model,
		Temperature:         openai.Float(opts.Temperature),
		MaxCompletionTokens: openai.Int(opts.MaxCompletionTokens),
	}
}

// transferTool builds the routing tool definition. The target enum pins the
// model to registered worker names so unknown routes surface as API-level
// validation instead of runtime errors.
func transferTool(workerNames []string) openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Type: "function",
		Function: openai.FunctionDefinitionParam{
			Name:        transferToolName,
			Description: openai.String("Hand the conversation off to the named worker agent. Use when a worker is better suited to make progress."),
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"agent": map[string]any{
						"type": "string",
						"enum": workerNames,
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Short justification for the handoff",
					},
				},
				"required": []string{"agent"},
			},
		},
	}
}

func parseTransfer(arguments string) (target, reason string, err error) {
	var args struct {
		Agent  string `json:"agent"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", "", fmt.Errorf("parse %s arguments: %w", transferToolName, err)
	}
	if args.Agent == "" {
		return "", "", fmt.Errorf("%s call missing required field 'agent'", transferToolName)
	}
	return args.Agent, args.Reason, nil
}

// buildMessages converts the shared transcript into chat messages from the
// perspective of the named agent. Its own AI turns become assistant messages;
// everything else, including handoff markers, is rendered as attributed user
// context so the model sees the whole conversation.
func buildMessages(transcript core.Transcript, self, instruction string) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	if instruction != "" {
		messages = append(messages, openai.SystemMessage(instruction))
	}

	for _, m := range transcript {
		switch m.Kind {
		case core.KindHuman:
			messages = append(messages, openai.UserMessage(m.Content))
		case core.KindAI:
			if m.Sender == self {
				messages = append(messages, openai.AssistantMessage(m.Content))
				continue
			}
			messages = append(messages, openai.UserMessage(fmt.Sprintf("%s: %s", m.Sender, m.Content)))
		case core.KindHandoffRequest, core.KindHandoffResponse:
			messages = append(messages, openai.UserMessage(renderHandoff(m)))
		}
	}

	return messages
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
