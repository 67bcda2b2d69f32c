package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Project-Sylos/Studio/internal/archive"
	"github.com/Project-Sylos/Studio/internal/assistant"
	"github.com/Project-Sylos/Studio/internal/scaffold"
	"github.com/Project-Sylos/Studio/internal/transcript"
	"github.com/Project-Sylos/Studio/internal/tree"
	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/internal/workflow"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portletApp = "my-react-portlet/src/main/resources/META-INF/resources/js/App.js"

// fakeAssistant replays scripted suggestions
type fakeAssistant struct {
	mu          sync.Mutex
	suggestions []*types.Suggestion
	err         error
	summary     string
	summaryErr  error
	requests    []types.SuggestionRequest

	started chan struct{}
	release chan struct{}
}

func (f *fakeAssistant) Suggest(ctx context.Context, req types.SuggestionRequest) (*types.Suggestion, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	var next *types.Suggestion
	if len(f.suggestions) > 0 {
		next = f.suggestions[0]
		f.suggestions = f.suggestions[1:]
	}
	err := f.err
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (f *fakeAssistant) Summarize(ctx context.Context, paths []string) (string, error) {
	return f.summary, f.summaryErr
}

func (f *fakeAssistant) GenerateStyles(ctx context.Context, req assistant.StyleRequest) (string, error) {
	return ".x { color: " + req.PrimaryColor + "; }", nil
}

func newTestSession(t *testing.T, fake *fakeAssistant) *Session {
	t.Helper()
	m := NewManager(Options{Assistant: fake})
	s, err := m.Create(scaffold.VariantPortlet)
	require.NoError(t, err)
	return s
}

func zipOf(t *testing.T, entries map[string]string, order ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if !strings.HasSuffix(name, "/") {
			_, err = w.Write([]byte(entries[name]))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestNewSessionStartsFromScaffold(t *testing.T) {
	s := newTestSession(t, &fakeAssistant{})
	v := s.View()

	assert.Equal(t, "my-react-portlet", v.Root.Name)
	assert.Equal(t, portletApp, v.ActiveFileID)
	require.Len(t, v.Messages, 1)
	assert.Equal(t, types.SenderBot, v.Messages[0].Sender)
	assert.Equal(t, workflow.StateIdle, v.State)

	active, ok := s.ActiveFile()
	require.True(t, ok)
	assert.Equal(t, "App.js", active.Name)
}

func TestSelectAndEditFile(t *testing.T) {
	s := newTestSession(t, &fakeAssistant{})
	before := s.Root()

	assert.ErrorIs(t, s.SelectFile("my-react-portlet/missing.js"), tree.ErrNotFound)
	assert.ErrorIs(t, s.SelectFile("my-react-portlet/src"), tree.ErrNotAFile)

	require.NoError(t, s.EditActive("export default () => null;"))
	got, err := s.File(portletApp)
	require.NoError(t, err)
	assert.Equal(t, "export default () => null;", got.Content)

	old, ok := tree.FindFile(before, portletApp)
	require.True(t, ok)
	assert.NotEqual(t, "export default () => null;", old.Content, "earlier snapshot must not change")

	assert.ErrorIs(t, s.EditFile("my-react-portlet/nope.js", "x"), tree.ErrNotFound)
}

func TestEditActiveWithoutSelection(t *testing.T) {
	s := newTestSession(t, &fakeAssistant{})
	s.mu.Lock()
	s.activeFileID = ""
	s.mu.Unlock()

	assert.ErrorIs(t, s.EditActive("x"), ErrNoActiveFile)
}

func TestSendPromptProposeThenApply(t *testing.T) {
	files := []types.FileChange{
		{Path: "src/components/Form.js", Content: "form"},
		{Path: "my-react-portlet/src/main/resources/META-INF/resources/js/App.js", Content: "app"},
	}
	fake := &fakeAssistant{suggestions: []*types.Suggestion{
		{Success: true, Message: "Drafted a form. Apply it?", Files: files},
		{Success: true, Message: "Applying now.", Files: files, ShouldApplyChanges: true},
	}}
	s := newTestSession(t, fake)
	before := s.Root()

	out, err := s.SendPrompt(context.Background(), "add a form")
	require.NoError(t, err)
	assert.Equal(t, workflow.StateProposed, out.State)
	assert.False(t, out.TreeChanged)
	assert.Nil(t, out.Notice)
	assert.Same(t, before, s.Root(), "a proposal must not touch the tree")
	assert.Len(t, s.View().Pending, 2)

	out, err = s.SendPrompt(context.Background(), "yes, apply it")
	require.NoError(t, err)
	assert.Equal(t, workflow.StateApplied, out.State)
	assert.True(t, out.TreeChanged)
	assert.Equal(t, portletApp, out.ActiveFileID)
	require.NotNil(t, out.Notice)
	assert.Equal(t, "Project files have been updated.", out.Notice.Description)

	form, err := s.File("my-react-portlet/src/components/Form.js")
	require.NoError(t, err)
	assert.Equal(t, "form", form.Content)

	msgs := s.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, "add a form", msgs[1].Content)
	assert.Len(t, msgs[2].Files, 2)
	assert.Equal(t, "Applying now.", msgs[4].Content)

	// the confirmation request carries the proposal in its history
	require.Len(t, fake.requests, 2)
	assert.Len(t, fake.requests[1].History, 3)
	assert.Len(t, fake.requests[1].History[2].Files, 2)
}

func TestSendPromptConversationalFailureFlag(t *testing.T) {
	fake := &fakeAssistant{suggestions: []*types.Suggestion{
		{Success: false, Message: "I need more detail."},
	}}
	s := newTestSession(t, fake)

	out, err := s.SendPrompt(context.Background(), "do the thing")
	require.NoError(t, err)
	assert.Equal(t, workflow.StateConversational, out.State)
	require.NotNil(t, out.Notice)
	assert.True(t, out.Notice.Destructive)
	assert.Equal(t, "I need more detail.", out.Notice.Description)
}

func TestSendPromptProviderError(t *testing.T) {
	fake := &fakeAssistant{err: errors.New("model overloaded")}
	s := newTestSession(t, fake)
	before := s.Root()

	out, err := s.SendPrompt(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, out.Failed())
	assert.Equal(t, msgPromptFailure, out.Reply.Content)
	assert.True(t, out.Notice.Destructive)
	assert.Same(t, before, s.Root())
	assert.Equal(t, workflow.StateIdle, s.View().State)
}

func TestSendPromptRejectsEmpty(t *testing.T) {
	s := newTestSession(t, &fakeAssistant{})
	_, err := s.SendPrompt(context.Background(), "  \n")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Len(t, s.Messages(), 1)
}

func TestApplyFailureLeavesTreeUntouched(t *testing.T) {
	fake := &fakeAssistant{suggestions: []*types.Suggestion{{
		Success: true,
		Message: "Replacing src.",
		Files: []types.FileChange{
			{Path: "src/ok.js", Content: "fine"},
			{Path: "src", Content: "src is a folder"},
		},
		ShouldApplyChanges: true,
	}}}
	s := newTestSession(t, fake)
	before := s.Root()

	out, err := s.SendPrompt(context.Background(), "apply")
	require.NoError(t, err)
	assert.True(t, out.Failed())
	assert.ErrorIs(t, out.Err, tree.ErrPathConflict)
	assert.False(t, out.TreeChanged)
	assert.Same(t, before, s.Root())
}

func TestOverlappingRequestsAreRejected(t *testing.T) {
	fake := &fakeAssistant{
		suggestions: []*types.Suggestion{{Success: true, Message: "done"}},
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	s := newTestSession(t, fake)

	done := make(chan error, 1)
	go func() {
		_, err := s.SendPrompt(context.Background(), "first")
		done <- err
	}()

	<-fake.started
	_, err := s.SendPrompt(context.Background(), "second")
	assert.ErrorIs(t, err, workflow.ErrBusy)
	_, err = s.Upload(context.Background(), "a.png", "image/png", []byte{1})
	assert.ErrorIs(t, err, workflow.ErrBusy)

	close(fake.release)
	require.NoError(t, <-done)
	assert.Equal(t, workflow.StateIdle, s.View().State)
}

func TestUploadZipImportsProject(t *testing.T) {
	fake := &fakeAssistant{summary: "I've loaded your project. Here's what I see: a shop."}
	s := newTestSession(t, fake)

	data := zipOf(t, map[string]string{
		"shop/README.md":       "# shop",
		"shop/src/index.js":    "index",
		"shop/src/lib/util.js": "util",
	}, "shop/", "shop/README.md", "shop/src/index.js", "shop/src/lib/util.js")

	out, err := s.Upload(context.Background(), "shop.zip", "", data)
	require.NoError(t, err)
	assert.False(t, out.Failed())
	assert.True(t, out.TreeChanged)
	assert.Equal(t, "shop/src/index.js", out.ActiveFileID)
	assert.Equal(t, fake.summary, out.Reply.Content)
	assert.Equal(t, "Project loaded from zip file.", out.Notice.Description)

	root := s.Root()
	assert.Equal(t, "shop", root.Name)
	assert.Equal(t, 3, len(tree.FilePaths(root)))

	msgs := s.Messages()
	assert.Equal(t, "Uploaded shop.zip", msgs[len(msgs)-2].Content)
	assert.Equal(t, workflow.StateIdle, s.View().State)
}

func TestUploadZipSummaryFallback(t *testing.T) {
	fake := &fakeAssistant{summaryErr: errors.New("no model")}
	s := newTestSession(t, fake)

	data := zipOf(t, map[string]string{"a.txt": "a"}, "a.txt")
	out, err := s.Upload(context.Background(), "a.zip", "application/zip", data)
	require.NoError(t, err)
	assert.Equal(t, assistant.FallbackSummary, out.Reply.Content)
	assert.Equal(t, archive.FallbackRootName, s.Root().Name)
	assert.Empty(t, out.ActiveFileID)
}

func TestUploadZipFailures(t *testing.T) {
	tests := []struct {
		name    string
		data    func(t *testing.T) []byte
		message string
		errIs   error
	}{
		{
			name:    "only directories",
			data:    func(t *testing.T) []byte { return zipOf(t, nil, "empty/", "empty/inner/") },
			message: msgEmptyArchive,
			errIs:   archive.ErrEmptyArchive,
		},
		{
			name:    "not a zip",
			data:    func(t *testing.T) []byte { return []byte("definitely not a zip") },
			message: "I ran into an error trying to unzip that file: ",
			errIs:   archive.ErrCorruptArchive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, &fakeAssistant{})
			before := s.Root()

			out, err := s.Upload(context.Background(), "p.zip", "application/zip", tt.data(t))
			require.NoError(t, err)
			assert.ErrorIs(t, out.Err, tt.errIs)
			assert.True(t, strings.HasPrefix(out.Reply.Content, tt.message))
			assert.Equal(t, "Could not process zip file.", out.Notice.Description)
			assert.Same(t, before, s.Root())
		})
	}
}

func TestUploadGenericFileGoesToProvider(t *testing.T) {
	fake := &fakeAssistant{suggestions: []*types.Suggestion{{Success: true, Message: "Nice mockup."}}}
	s := newTestSession(t, fake)

	out, err := s.Upload(context.Background(), "notes.txt", "text/plain", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, workflow.StateConversational, out.State)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "data:text/plain;base64,aGVsbG8=", fake.requests[0].FileDataURI)
	assert.Empty(t, fake.requests[0].Prompt)
}

func TestUploadTooLarge(t *testing.T) {
	m := NewManager(Options{Assistant: &fakeAssistant{}, MaxUploadBytes: 4})
	s, err := m.Create("")
	require.NoError(t, err)

	out, err := s.Upload(context.Background(), "big.png", "image/png", []byte("12345"))
	require.NoError(t, err)
	assert.Equal(t, msgReadFailure, out.Reply.Content)
	assert.Equal(t, "File could not be read.", out.Notice.Description)
	assert.Equal(t, workflow.StateIdle, s.View().State)
}

func TestImportArchiveTooLarge(t *testing.T) {
	m := NewManager(Options{Assistant: &fakeAssistant{}, MaxUploadBytes: 4})
	s, err := m.Create("")
	require.NoError(t, err)
	before := s.Root()

	out, err := s.ImportArchive(context.Background(), []byte("12345"))
	require.NoError(t, err)
	assert.True(t, out.Failed())
	assert.Equal(t, msgReadFailure, out.Reply.Content)
	assert.Same(t, before, s.Root())
}

func TestReadFailure(t *testing.T) {
	s := newTestSession(t, &fakeAssistant{})
	count := len(s.Messages())

	out, err := s.ReadFailure("photo.png", errors.New("unexpected EOF"))
	require.NoError(t, err)
	assert.True(t, out.Failed())
	require.NotNil(t, out.Notice)
	assert.True(t, out.Notice.Destructive)
	assert.Equal(t, noticeReadFailure, out.Notice.Description)

	msgs := s.Messages()
	require.Len(t, msgs, count+2)
	assert.Equal(t, "Uploaded photo.png", msgs[count].Content)
	assert.Equal(t, msgReadFailure, msgs[count+1].Content)

	_, err = s.ReadFailure("", errors.New("body too large"))
	require.NoError(t, err)
	assert.Len(t, s.Messages(), count+3)
	assert.Equal(t, workflow.StateIdle, s.View().State)
}

func TestIsZipUpload(t *testing.T) {
	tests := []struct {
		name, mime string
		want       bool
	}{
		{"project.zip", "", true},
		{"PROJECT.ZIP", "application/octet-stream", true},
		{"blob", "application/zip", true},
		{"screenshot.png", "image/png", false},
		{"zip.txt", "text/plain", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsZipUpload(tt.name, tt.mime), tt.name)
	}
}

func TestExportRoundTrip(t *testing.T) {
	s := newTestSession(t, &fakeAssistant{})
	require.NoError(t, s.EditActive("changed"))

	name, data, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "my-react-portlet.zip", name)

	result, err := archive.Import(data)
	require.NoError(t, err)
	assert.Equal(t, tree.FilePaths(s.Root()), tree.FilePaths(result.Root))

	app, ok := tree.FindFile(result.Root, portletApp)
	require.True(t, ok)
	assert.Equal(t, "changed", app.Content)
}

func TestClearChatAndResetProject(t *testing.T) {
	fake := &fakeAssistant{suggestions: []*types.Suggestion{{Success: true, Message: "hi"}}}
	s := newTestSession(t, fake)

	_, err := s.SendPrompt(context.Background(), "hello")
	require.NoError(t, err)
	require.NoError(t, s.EditActive("edited"))

	require.NoError(t, s.ClearChat())
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, s.Variant().Greeting, msgs[0].Content)
	app, _ := s.File(portletApp)
	assert.Equal(t, "edited", app.Content, "clearing chat keeps the tree")

	require.NoError(t, s.ResetProject())
	app, _ = s.File(portletApp)
	assert.NotEqual(t, "edited", app.Content)
	assert.Equal(t, portletApp, s.View().ActiveFileID)
}

func TestGenerateStyles(t *testing.T) {
	s := newTestSession(t, &fakeAssistant{})
	css, err := s.GenerateStyles(context.Background(), "cards")
	require.NoError(t, err)
	assert.Equal(t, ".x { color: #6699CC; }", css)
}

func TestTranscriptSurvivesReopen(t *testing.T) {
	store := transcript.NewMemory()
	fake := &fakeAssistant{suggestions: []*types.Suggestion{{Success: true, Message: "hi there"}}}
	m := NewManager(Options{Assistant: fake, Store: store})

	s, err := m.Create(scaffold.VariantReact)
	require.NoError(t, err)
	_, err = s.SendPrompt(context.Background(), "hello")
	require.NoError(t, err)

	require.NoError(t, m.Close(s.ID))
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	reopened, err := m.Open(s.ID, scaffold.VariantReact)
	require.NoError(t, err)
	assert.Len(t, reopened.Messages(), 3)

	// the other variant has its own transcript
	stored, err := store.Load(transcript.Key{SessionID: s.ID, StorageKey: "sasha-chat-history-portlet"})
	require.NoError(t, err)
	assert.Empty(t, stored)
}
