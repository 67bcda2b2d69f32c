package session

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Project-Sylos/Studio/internal/archive"
	"github.com/Project-Sylos/Studio/internal/assistant"
	"github.com/Project-Sylos/Studio/internal/metrics"
	"github.com/Project-Sylos/Studio/internal/tree"
	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/internal/utils"
	"github.com/Project-Sylos/Studio/internal/workflow"
	"go.uber.org/zap"
)

func botMessage(content string, files []types.FileChange) types.ChatMessage {
	return types.ChatMessage{Sender: types.SenderBot, Content: content, Files: files}
}

func userMessage(content string) types.ChatMessage {
	return types.ChatMessage{Sender: types.SenderUser, Content: content}
}

// SendPrompt sends a chat message to the assistant and applies the answer
// when it carries files and the apply flag. Provider failures are reported
// through the outcome; only ErrEmptyPrompt and workflow.ErrBusy are
// returned as errors.
func (s *Session) SendPrompt(ctx context.Context, prompt string) (*Outcome, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if err := s.machine.Begin(); err != nil {
		return nil, err
	}

	history := s.Messages()
	s.appendMessages(userMessage(prompt))

	req := types.SuggestionRequest{Prompt: prompt, History: history}
	return s.resolve(ctx, req, msgPromptFailure), nil
}

// Upload routes an uploaded file: zip archives are imported, anything else
// is sent to the assistant as a data URI.
func (s *Session) Upload(ctx context.Context, name, mimeType string, data []byte) (*Outcome, error) {
	if err := s.machine.Begin(); err != nil {
		return nil, err
	}

	s.appendMessages(userMessage("Uploaded " + name))

	if err := s.checkUploadSize(len(data)); err != nil {
		s.machine.Fail()
		return s.fail(msgReadFailure, noticeReadFailure, err), nil
	}

	if IsZipUpload(name, mimeType) {
		defer s.machine.Fail()
		return s.importArchive(ctx, data), nil
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	req := types.SuggestionRequest{
		FileDataURI: utils.EncodeDataURI(mimeType, data),
		History:     s.Messages(),
	}
	return s.resolve(ctx, req, msgUploadFailure), nil
}

// ImportArchive replaces the project with the one contained in a zip
func (s *Session) ImportArchive(ctx context.Context, data []byte) (*Outcome, error) {
	if err := s.machine.Begin(); err != nil {
		return nil, err
	}
	defer s.machine.Fail()

	if err := s.checkUploadSize(len(data)); err != nil {
		return s.fail(msgReadFailure, noticeReadFailure, err), nil
	}
	return s.importArchive(ctx, data), nil
}

// ReadFailure records an upload whose bytes could not be read before they
// reached the session. name may be empty when the file name is unknown.
func (s *Session) ReadFailure(name string, cause error) (*Outcome, error) {
	if err := s.machine.Begin(); err != nil {
		return nil, err
	}
	defer s.machine.Fail()

	if name != "" {
		s.appendMessages(userMessage("Uploaded " + name))
	}
	return s.fail(msgReadFailure, noticeReadFailure, cause), nil
}

func (s *Session) checkUploadSize(n int) error {
	if s.maxUploadBytes > 0 && int64(n) > s.maxUploadBytes {
		return fmt.Errorf("upload of %d bytes exceeds limit of %d", n, s.maxUploadBytes)
	}
	return nil
}

// IsZipUpload reports whether an upload should go to archive import
func IsZipUpload(name, mimeType string) bool {
	return mimeType == "application/zip" || strings.EqualFold(path.Ext(name), ".zip")
}

// GenerateStyles asks the assistant for a stylesheet in the studio theme
func (s *Session) GenerateStyles(ctx context.Context, layout string) (string, error) {
	css, err := s.assistant.GenerateStyles(ctx, assistant.DefaultStyleRequest(layout))
	if err != nil {
		s.logger.Warn("style generation failed", zap.Error(err))
		return "", err
	}
	return css, nil
}

// resolve runs one suggestion through the workflow. The machine must be in
// AwaitingSuggestion.
func (s *Session) resolve(ctx context.Context, req types.SuggestionRequest, failureMessage string) *Outcome {
	start := time.Now()
	suggestion, err := s.assistant.Suggest(ctx, req)
	if err != nil {
		s.machine.Fail()
		metrics.RecordSuggestion("failed", time.Since(start))
		return s.fail(failureMessage, noticeUnexpected, err)
	}

	state, err := s.machine.Resolve(suggestion)
	if err != nil {
		return s.fail(failureMessage, noticeUnexpected, err)
	}
	metrics.RecordSuggestion(string(state), time.Since(start))

	reply := botMessage(suggestion.Message, suggestion.Files)
	out := &Outcome{Reply: &reply, State: state}

	if state == workflow.StateApplied {
		s.applyBatch(out, suggestion.Files)
	} else {
		s.appendMessages(reply)
		if !suggestion.Success && suggestion.Message != "" {
			out.Notice = &types.Notice{Title: "Info", Description: suggestion.Message, Destructive: true}
		}
	}

	s.logger.Info("suggestion resolved",
		zap.String("state", string(state)),
		zap.Int("files", len(suggestion.Files)),
		zap.Duration("duration", time.Since(start)),
	)

	return out
}

// applyBatch commits an applied suggestion. The batch is folded onto the
// tree as it is now, so edits made while the provider was running survive.
func (s *Session) applyBatch(out *Outcome, files []types.FileChange) {
	s.mu.Lock()
	result, err := tree.ApplyBatch(s.root, files)
	if err == nil {
		s.root = result.Root
		s.activeFileID = result.ActiveFileID
	}
	s.messages = append(s.messages, *out.Reply)
	if err != nil {
		s.messages = append(s.messages, botMessage(fmt.Sprintf(msgApplyFailure, err), nil))
	}
	snapshot := append([]types.ChatMessage(nil), s.messages...)
	s.touch()
	s.mu.Unlock()

	s.saveTranscript(snapshot)

	if err != nil {
		s.logger.Warn("batch update failed", zap.Error(err))
		out.Err = err
		out.Notice = &types.Notice{Title: "Error", Description: noticeApplyFailure, Destructive: true}
		return
	}

	metrics.RecordBatch(len(files))
	out.TreeChanged = true
	out.ActiveFileID = result.ActiveFileID
	out.Notice = &types.Notice{Title: "Success", Description: noticeFilesUpdated}
}

func (s *Session) importArchive(ctx context.Context, data []byte) *Outcome {
	result, err := archive.Import(data)
	if err != nil {
		metrics.RecordArchiveImport(false)
		if errors.Is(err, archive.ErrEmptyArchive) {
			return s.fail(msgEmptyArchive, noticeZipFailure, err)
		}
		return s.fail(fmt.Sprintf(msgCorruptArchive, err), noticeZipFailure, err)
	}
	metrics.RecordArchiveImport(true)

	summary, err := s.assistant.Summarize(ctx, result.Paths)
	if err != nil || strings.TrimSpace(summary) == "" {
		if err != nil {
			s.logger.Warn("archive summary failed", zap.Error(err))
		}
		summary = assistant.FallbackSummary
	}

	active, _ := tree.FirstFileWithSuffix(result.Root, ".js")

	s.mu.Lock()
	s.root = result.Root
	s.activeFileID = active
	s.mu.Unlock()

	reply := botMessage(summary, nil)
	s.appendMessages(reply)

	s.logger.Info("project imported",
		zap.String("root", result.Root.Name),
		zap.Int("files", len(result.Paths)),
	)

	return &Outcome{
		Reply:        &reply,
		Notice:       &types.Notice{Title: "Success", Description: noticeProjectLoaded},
		State:        workflow.StateIdle,
		TreeChanged:  true,
		ActiveFileID: active,
	}
}

// fail records a failure as a bot message and a destructive notice
func (s *Session) fail(message, notice string, err error) *Outcome {
	s.logger.Warn("action failed", zap.Error(err))

	reply := botMessage(message, nil)
	s.appendMessages(reply)

	return &Outcome{
		Reply:  &reply,
		Notice: &types.Notice{Title: "Error", Description: notice, Destructive: true},
		State:  workflow.StateIdle,
		Err:    err,
	}
}
