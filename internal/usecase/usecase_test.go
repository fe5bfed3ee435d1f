package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DashPull/internal/domain/models"
	"DashPull/internal/domain/service"
	"DashPull/internal/repository"
	"DashPull/internal/services/chart"
	"DashPull/internal/services/prefs"
	"DashPull/internal/services/query"
	"DashPull/internal/services/relay"
	"DashPull/internal/services/synth"
)

type recorder struct {
	mu       sync.Mutex
	degraded []string
	builds   []string
	relays   []string
}

func (r *recorder) RecordDatasetLoad(string, string) {}
func (r *recorder) RecordDegraded(dashboard, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degraded = append(r.degraded, dashboard+":"+kind)
}
func (r *recorder) RecordBuild(dashboard string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds = append(r.builds, dashboard)
}
func (r *recorder) RecordRelay(outcome string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.relays = append(r.relays, outcome)
}
func (r *recorder) RecordError(string) {}

type failingSource[T any] struct{ err error }

func (s failingSource[T]) Load(context.Context) (*T, error) { return nil, s.err }
func (s failingSource[T]) Name() string                     { return "failing" }

func churnUseCase(t *testing.T, rec *recorder, store *prefs.Store) *ChurnUseCase {
	t.Helper()
	src := repository.NewPopulationSource(synth.DefaultConfig(), models.DefaultSegmentRules(), nil, nil)
	return NewChurnUseCase(src, store, rec, nil)
}

func defaultChurnFilter() models.ChurnFilter {
	return models.ChurnFilter{Segment: models.SegmentAll, SortBy: "roi", Order: "desc"}
}

func TestChurnViewReference(t *testing.T) {
	rec := &recorder{}
	uc := churnUseCase(t, rec, prefs.NewStore())

	v := uc.View(context.Background(), models.ChurnRequest{ChurnFilter: defaultChurnFilter()})
	assert.Equal(t, models.DashboardChurn, v.Dashboard)
	assert.Equal(t, models.StatusOK, v.Status)
	assert.Equal(t, 359, v.Meta["count"])
	assert.InDelta(t, 7988.832478784067, v.Meta["total_roi"].(float64), 1e-6)
	assert.Len(t, v.Figures, 4)
	require.Len(t, v.KPIs, 2)
	assert.Equal(t, "359", v.KPIs[0].Value)
	assert.Equal(t, []string{models.DashboardChurn}, rec.builds)
}

func TestChurnViewEmptySelection(t *testing.T) {
	uc := churnUseCase(t, &recorder{}, nil)
	f := defaultChurnFilter()
	f.MinScore = 1
	f.Budget = 100000

	v := uc.View(context.Background(), models.ChurnRequest{ChurnFilter: f})
	assert.Equal(t, models.StatusEmpty, v.Status)
	assert.Equal(t, query.StateEmpty, v.Meta["state"])
	assert.Len(t, v.Figures, 4)
}

func TestChurnThresholdsIgnoreFilter(t *testing.T) {
	uc := churnUseCase(t, &recorder{}, nil)
	a := uc.View(context.Background(), models.ChurnRequest{ChurnFilter: defaultChurnFilter()})
	f := defaultChurnFilter()
	f.Segment = models.SegmentHigh
	b := uc.View(context.Background(), models.ChurnRequest{ChurnFilter: f})
	assert.Equal(t, a.Meta["thresholds"], b.Meta["thresholds"])
}

func TestChurnQuery(t *testing.T) {
	uc := churnUseCase(t, &recorder{}, nil)
	res, err := uc.Query(context.Background(), defaultChurnFilter())
	require.NoError(t, err)
	assert.Equal(t, query.StateReady, res.State)
	assert.Equal(t, 359, res.Count)
}

func TestStyleFallsBackToPreferences(t *testing.T) {
	store := prefs.NewStore()
	store.Set(models.PreferencesUpdate{Theme: models.ThemeLight, Lang: models.LangEN})
	uc := churnUseCase(t, &recorder{}, store)

	v := uc.View(context.Background(), models.ChurnRequest{ChurnFilter: defaultChurnFilter()})
	assert.Equal(t, chart.Style{Theme: models.ThemeLight, Lang: models.LangEN}, v.Style)

	v = uc.View(context.Background(), models.ChurnRequest{
		ChurnFilter:  defaultChurnFilter(),
		StyleRequest: models.StyleRequest{Lang: "fr-FR"},
	})
	assert.Equal(t, chart.Style{Theme: models.ThemeLight, Lang: models.LangFR}, v.Style)
}

func TestFMCGViewFromFile(t *testing.T) {
	src := repository.NewFMCGSource("../repository/testdata/fmcg.json")
	uc := NewFMCGUseCase(src, nil, &recorder{}, nil)

	v := uc.View(context.Background(), models.FMCGRequest{FMCGFilter: models.FMCGFilter{Commodity: "Cocoa"}})
	assert.Equal(t, models.StatusOK, v.Status)
	assert.Len(t, v.Figures, 5)
	require.NotNil(t, v.Insight)
	assert.NotEmpty(t, v.Insight.Text)
	assert.NotEmpty(t, v.KPIs)
}

func TestFMCGViewDegraded(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{models.Unavailable("fmcg", errors.New("boom")), "unavailable"},
		{models.Malformed("fmcg", errors.New("bad")), "malformed"},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			rec := &recorder{}
			uc := NewFMCGUseCase(failingSource[models.FMCGDocument]{err: tc.err}, nil, rec, nil)

			v := uc.View(context.Background(), models.FMCGRequest{StyleRequest: models.StyleRequest{Lang: "en"}})
			assert.True(t, v.Degraded())
			assert.Equal(t, chart.Text(models.LangEN, "notice."+tc.kind), v.Notice)
			assert.Len(t, v.Figures, 5)
			assert.Nil(t, v.Insight)
			assert.Empty(t, v.KPIs)
			assert.Equal(t, []string{"fmcg:" + tc.kind}, rec.degraded)
		})
	}
}

func TestOmniragViewUsesFallback(t *testing.T) {
	uc := NewOmniragUseCase(repository.NewAnalyticsSource(""), nil, &recorder{}, nil)

	v := uc.View(context.Background(), models.OmniragRequest{})
	assert.Equal(t, models.StatusOK, v.Status)
	assert.Len(t, v.Figures, 6)
	assert.NotEmpty(t, v.KPIs)

	data := uc.DataContext(context.Background(), models.LangEN)
	assert.Contains(t, data, "\n")
	assert.NotEmpty(t, data)
}

func TestOmniragViewDegraded(t *testing.T) {
	uc := NewOmniragUseCase(failingSource[models.AnalyticsDocument]{err: models.Unavailable("omnirag", nil)}, nil, nil, nil)

	v := uc.View(context.Background(), models.OmniragRequest{})
	assert.True(t, v.Degraded())
	assert.Len(t, v.Figures, 6)
	assert.Empty(t, uc.DataContext(context.Background(), models.LangFR))
}

type stubProvider struct {
	reply  string
	err    error
	delay  time.Duration
	prompt service.Prompt
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(ctx context.Context, prompt service.Prompt) (string, error) {
	p.prompt = prompt
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return p.reply, p.err
}

type stubData string

func (d stubData) DataContext(context.Context, string) string { return string(d) }

type stubSender struct {
	req   relay.Request
	reply string
	err   error
}

func (s *stubSender) Send(_ context.Context, req relay.Request) (string, error) {
	s.req = req
	return s.reply, s.err
}

func turns(n int) []models.Turn {
	out := make([]models.Turn, n)
	for i := range out {
		out[i] = models.Turn{Role: models.RoleUser, Content: string(rune('a' + i))}
	}
	return out
}

func TestChatReplyWithProvider(t *testing.T) {
	rec := &recorder{}
	p := &stubProvider{reply: "**Revenue** is up"}
	uc := NewChatUseCase(rec, nil, WithProvider(p), WithDataContext(stubData("Revenue: 10")))

	res, err := uc.Reply(context.Background(), models.ChatRequest{
		Message:     "How is revenue?",
		History:     turns(8),
		Lang:        "en-US",
		PageContext: "omnirag",
	})
	require.NoError(t, err)
	assert.Equal(t, "**Revenue** is up", res.Reply)
	assert.Contains(t, res.HTML, "<strong>Revenue</strong>")
	assert.Len(t, p.prompt.History, relay.MaxHistory)
	assert.Equal(t, "c", p.prompt.History[0].Content)
	assert.Equal(t, "Revenue: 10", p.prompt.Context)
	assert.Contains(t, p.prompt.System, "Answer in English.")
	assert.Contains(t, p.prompt.System, "omnirag")
	assert.Equal(t, []string{"ok"}, rec.relays)
	assert.Equal(t, "stub", uc.Backend())
}

func TestChatReplyDropsRepeatedUserTurn(t *testing.T) {
	p := &stubProvider{reply: "42"}
	uc := NewChatUseCase(nil, nil, WithProvider(p))

	_, err := uc.Reply(context.Background(), models.ChatRequest{
		Message: "total?",
		History: []models.Turn{
			{Role: models.RoleUser, Content: "hello"},
			{Role: models.RoleAssistant, Content: "hi"},
			{Role: models.RoleUser, Content: "total?"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "total?", p.prompt.Message)
	require.Len(t, p.prompt.History, 2)
	assert.Equal(t, models.RoleAssistant, p.prompt.History[1].Role)

	// A differing last turn is kept.
	_, err = uc.Reply(context.Background(), models.ChatRequest{
		Message: "and churn?",
		History: []models.Turn{{Role: models.RoleUser, Content: "total?"}},
	})
	require.NoError(t, err)
	assert.Len(t, p.prompt.History, 1)
}

func TestChatReplyTimeout(t *testing.T) {
	rec := &recorder{}
	p := &stubProvider{reply: "late", delay: time.Second}
	uc := NewChatUseCase(rec, nil, WithProvider(p), WithChatTimeout(50*time.Millisecond))

	_, err := uc.Reply(context.Background(), models.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrRelayTimeout)
	assert.Equal(t, []string{"timeout"}, rec.relays)
}

func TestChatReplyProviderFailure(t *testing.T) {
	uc := NewChatUseCase(nil, nil, WithProvider(&stubProvider{err: errors.New("quota")}))
	_, err := uc.Reply(context.Background(), models.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, models.ErrRelayError)

	uc = NewChatUseCase(nil, nil, WithProvider(&stubProvider{reply: "  "}))
	_, err = uc.Reply(context.Background(), models.ChatRequest{Message: "hi"})
	var re *models.RelayError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, models.ReasonMalformed, re.Reason)
}

func TestChatReplyUpstream(t *testing.T) {
	s := &stubSender{reply: "forwarded"}
	uc := NewChatUseCase(nil, nil, WithUpstream(s))

	res, err := uc.Reply(context.Background(), models.ChatRequest{Message: "hi", Lang: "de", PageContext: "fmcg"})
	require.NoError(t, err)
	assert.Equal(t, "forwarded", res.Reply)
	assert.Equal(t, models.LangFR, s.req.Lang)
	assert.Equal(t, "fmcg", s.req.PageContext)
	assert.Equal(t, "upstream", uc.Backend())
}

func TestChatDisabled(t *testing.T) {
	uc := NewChatUseCase(nil, nil)
	assert.False(t, uc.Enabled())
	_, err := uc.Reply(context.Background(), models.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrChatDisabled)
}

func TestSystemPromptLanguage(t *testing.T) {
	assert.Contains(t, SystemPrompt(models.LangFR, ""), "Réponds en français.")
	assert.NotContains(t, SystemPrompt(models.LangFR, ""), "currently viewing")
}

type publishRecorder struct {
	mu     sync.Mutex
	topics []string
	events []models.PreferencesChanged
	err    error
}

func (p *publishRecorder) Publish(_ context.Context, topic, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	evt := value.(models.PreferencesChanged)
	if key != evt.ID {
		return errors.New("key mismatch")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, evt)
	return p.err
}

func (p *publishRecorder) Close() error { return nil }

func TestPreferencesPublishesOnChange(t *testing.T) {
	store := prefs.NewStore()
	pub := &publishRecorder{}
	uc := NewPreferencesUseCase(store, pub, "prefs", nil)
	defer uc.Close()

	cur, changed := uc.Update(models.PreferencesUpdate{Theme: models.ThemeLight})
	assert.True(t, changed)
	assert.Equal(t, models.ThemeLight, cur.Theme)

	_, changed = uc.Update(models.PreferencesUpdate{Theme: models.ThemeLight})
	assert.False(t, changed)

	store.SetLanguage("en")

	require.Len(t, pub.events, 2)
	assert.Equal(t, []string{"prefs", "prefs"}, pub.topics)
	assert.Equal(t, models.ThemeDark, pub.events[0].Previous.Theme)
	assert.Equal(t, models.ThemeLight, pub.events[0].Current.Theme)
	assert.Equal(t, models.LangEN, pub.events[1].Current.Lang)
	assert.NotEqual(t, pub.events[0].ID, pub.events[1].ID)
}

func TestPreferencesCloseStopsPublishing(t *testing.T) {
	store := prefs.NewStore()
	pub := &publishRecorder{err: errors.New("broker down")}
	uc := NewPreferencesUseCase(store, pub, "prefs", nil)

	uc.Update(models.PreferencesUpdate{Lang: models.LangEN})
	uc.Close()
	uc.Update(models.PreferencesUpdate{Lang: models.LangFR})
	assert.Len(t, pub.events, 1)
}

func TestPreferencesWatch(t *testing.T) {
	uc := NewPreferencesUseCase(prefs.NewStore(), nil, "", nil)
	var got []models.Preferences
	stop := uc.Watch(func(_, cur models.Preferences) { got = append(got, cur) })
	uc.Update(models.PreferencesUpdate{Theme: models.ThemeLight})
	stop()
	uc.Update(models.PreferencesUpdate{Theme: models.ThemeDark})
	require.Len(t, got, 1)
	assert.Equal(t, models.ThemeLight, got[0].Theme)
}
