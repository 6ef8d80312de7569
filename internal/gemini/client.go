package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/legal-os/pkg/poll"
)

const transcribePrompt = `Дословно расшифруй аудиозапись. Верни только текст речи без комментариев.`

// Generate sends a text prompt and returns the concatenated response text.
func (c *implClient) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	err := c.withKey(ctx, "generate", func(ctx context.Context, client *genai.Client) error {
		var err error
		text, err = c.generate(ctx, client, []*genai.Part{genai.NewPartFromText(prompt)})
		return err
	})
	return text, err
}

// Transcribe uploads the recording, polls until it is ACTIVE, asks the model
// for a transcript and deletes the remote copy.
func (c *implClient) Transcribe(ctx context.Context, audio Audio) (string, error) {
	var text string
	err := c.withKey(ctx, "transcribe", func(ctx context.Context, client *genai.Client) error {
		file, err := client.Files.UploadFromPath(ctx, audio.Path, &genai.UploadFileConfig{
			MIMEType:    audio.MIMEType,
			DisplayName: audio.DisplayName,
		})
		if err != nil {
			return fmt.Errorf("upload %s: %w", audio.DisplayName, err)
		}
		defer c.deleteFile(ctx, client, file.Name)

		c.logger.Debug(ctx, "Uploaded %s as %s, waiting for processing", audio.DisplayName, file.Name)

		file, err = c.waitActive(ctx, client, file)
		if err != nil {
			return err
		}

		text, err = c.generate(ctx, client, []*genai.Part{
			genai.NewPartFromText(transcribePrompt),
			genai.NewPartFromURI(file.URI, file.MIMEType),
		})
		return err
	})
	return text, err
}

func (c *implClient) waitActive(ctx context.Context, client *genai.Client, file *genai.File) (*genai.File, error) {
	if file.State == genai.FileStateActive {
		return file, nil
	}

	current := file
	err := poll.Until(ctx, "file "+file.Name, c.opts.PollInterval, c.opts.PollTimeout, func(ctx context.Context) (bool, error) {
		f, err := client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return false, fmt.Errorf("get file state: %w", err)
		}
		current = f

		switch f.State {
		case genai.FileStateActive:
			return true, nil
		case genai.FileStateFailed:
			msg := "processing failed"
			if f.Error != nil && f.Error.Message != "" {
				msg = f.Error.Message
			}
			return false, fmt.Errorf("file %s: %s", f.Name, msg)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return current, nil
}

func (c *implClient) generate(ctx context.Context, client *genai.Client, parts []*genai.Part) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	result, err := client.Models.GenerateContent(ctx, c.opts.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := responseText(result)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *implClient) deleteFile(ctx context.Context, client *genai.Client, name string) {
	if _, err := client.Files.Delete(context.WithoutCancel(ctx), name, nil); err != nil {
		c.logger.Warn(ctx, "Failed to delete uploaded file %s: %v", name, err)
	}
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
