package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

type bedrockConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockGenerator implements Generator using AWS Bedrock's Converse API.
// It serves as the fallback provider when Gemini is unavailable.
type BedrockGenerator struct {
	api     bedrockConverseAPI
	modelID string
}

func NewBedrockGenerator(api bedrockConverseAPI, modelID string) (*BedrockGenerator, error) {
	if api == nil {
		return nil, errors.New("conversation: bedrock converse client cannot be nil")
	}
	if strings.TrimSpace(modelID) == "" {
		return nil, errors.New("conversation: bedrock model id is required")
	}
	return &BedrockGenerator{api: api, modelID: modelID}, nil
}

// Generate sends the assembled prompt as a single user message.
func (g *BedrockGenerator) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	inference := &brtypes.InferenceConfiguration{}
	if req.MaxOutputTokens > 0 {
		inference.MaxTokens = aws.Int32(req.MaxOutputTokens)
	}
	if req.Temperature >= 0 {
		inference.Temperature = aws.Float32(req.Temperature)
	}
	if inference.MaxTokens == nil && inference.Temperature == nil {
		inference = nil
	}

	out, err := g.api.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(g.modelID),
		Messages: []brtypes.Message{
			{
				Role: brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: req.Prompt},
				},
			},
		},
		InferenceConfig: inference,
	})
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("conversation: bedrock generation failed: %w", err)
	}

	text, err := bedrockExtractOutputText(out)
	if err != nil {
		return GenerateResponse{}, err
	}

	resp := GenerateResponse{Text: strings.TrimSpace(text)}
	if out.Usage != nil {
		resp.Usage = TokenUsage{
			InputTokens:  int32OrZero(out.Usage.InputTokens),
			OutputTokens: int32OrZero(out.Usage.OutputTokens),
			TotalTokens:  int32OrZero(out.Usage.TotalTokens),
		}
	}
	return resp, nil
}

func bedrockExtractOutputText(out *bedrockruntime.ConverseOutput) (string, error) {
	if out == nil {
		return "", errors.New("conversation: bedrock response is nil")
	}
	msgOut, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("conversation: bedrock response did not include a message output")
	}
	if len(msgOut.Value.Content) == 0 {
		return "", errors.New("conversation: bedrock response message was empty")
	}

	var builder strings.Builder
	for _, block := range msgOut.Value.Content {
		if textBlock, ok := block.(*brtypes.ContentBlockMemberText); ok {
			builder.WriteString(textBlock.Value)
		}
	}
	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("conversation: bedrock response contained no text content blocks")
	}
	return text, nil
}

func int32OrZero(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
