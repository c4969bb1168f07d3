package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Conceptual-Machines/fretlab-api/internal/config"
	"github.com/Conceptual-Machines/fretlab-api/internal/metrics"
	"github.com/Conceptual-Machines/fretlab-api/internal/models"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:      "test",
		AllowedOrigins:   []string{"*"},
		DefaultBPM:       120,
		DefaultRiffStyle: "melodic",
		MaxFret:          15,
	}
}

// setupTestRouter wires every v1 handler without the observability middleware
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	presets, err := theory.LoadPresets()
	require.NoError(t, err)

	cfg := testConfig()
	cloudwatch := &metrics.Client{}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", HealthCheck)
	router.GET("/api/metrics", NewMetricsHandler("test", presets).GetMetrics)

	theoryHandler := NewTheoryHandler(presets)
	router.GET("/api/v1/notes", theoryHandler.Notes)
	router.GET("/api/v1/qualities", theoryHandler.Qualities)
	router.GET("/api/v1/scales", theoryHandler.Scales)
	router.GET("/api/v1/progressions", theoryHandler.Progressions)

	shapesHandler := NewShapesHandler(cloudwatch)
	router.GET("/api/v1/shapes", shapesHandler.Shapes)
	router.GET("/api/v1/triads", shapesHandler.Triads)

	riffHandler := NewRiffHandler(cfg, presets, cloudwatch)
	router.POST("/api/v1/riffs", riffHandler.Generate)
	router.POST("/api/v1/riffs/chord", riffHandler.GenerateChord)
	router.POST("/api/v1/riffs/notes/add", riffHandler.AddNote)
	router.POST("/api/v1/riffs/notes/update", riffHandler.UpdateNote)
	router.POST("/api/v1/riffs/notes/remove", riffHandler.RemoveNote)
	router.POST("/api/v1/riffs/tab", riffHandler.Tab)
	router.POST("/api/v1/riffs/schedule", riffHandler.Schedule)
	router.POST("/api/v1/riffs/midi", riffHandler.MIDI)

	positionHandler := NewPositionHandler(cfg)
	router.POST("/api/v1/positions/find", positionHandler.Find)
	router.GET("/api/v1/positions/available", positionHandler.Available)

	return router
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// C then Am, two notes in the first measure
func editableRiff() models.ProgressionRiff {
	return models.ProgressionRiff{
		ID:    "riff-fixture",
		BPM:   100,
		Style: models.StyleMelodic,
		ChordRiffs: []models.ChordRiff{
			{
				ChordRoot: theory.C, ChordQuality: theory.Major, ChordDegree: "I", TotalBeats: 4,
				Notes: []models.RiffNote{
					{ID: "I-0", String: 2, Fret: 1, Duration: 1, StartBeat: 0, Note: theory.C, Interval: "R"},
					{ID: "I-2", String: 1, Fret: 0, Duration: 1, StartBeat: 2, Note: theory.E, Interval: "3"},
				},
			},
			{
				ChordRoot: theory.A, ChordQuality: theory.Minor, ChordDegree: "vi", TotalBeats: 4,
				Notes: []models.RiffNote{
					{ID: "vi-0", String: 1, Fret: 5, Duration: 1, StartBeat: 0, Note: theory.A, Interval: "R"},
				},
			},
		},
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[map[string]any](t, w)
	assert.Equal(t, "healthy", health["status"])

	w = performRequest(router, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[MetricsResponse](t, w)
	assert.Equal(t, "test", resp.Version)
	assert.NotEmpty(t, resp.System.GoVersion)
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{1.5, "1.50s"},
		{61, "1m1.00s"},
		{3725, "1h2m5.00s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatUptime(time.Duration(tt.seconds * float64(time.Second))))
		})
	}
}

func TestNotes(t *testing.T) {
	router := setupTestRouter(t)
	w := performRequest(router, http.MethodGet, "/api/v1/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[NotesResponse](t, w)
	assert.Len(t, resp.Notes, 12)
	require.Len(t, resp.Tuning, 6)
	assert.Equal(t, theory.LowEString, resp.Tuning[0].String)
	assert.Equal(t, 40, resp.Tuning[0].MIDI)
	assert.Equal(t, "High E", resp.Tuning[5].Label)
}

func TestQualitiesAndProgressions(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/api/v1/qualities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	qualities := decode[map[string][]theory.Quality](t, w)
	assert.Len(t, qualities["qualities"], 11)

	w = performRequest(router, http.MethodGet, "/api/v1/progressions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progressions := decode[map[string][]theory.Progression](t, w)
	assert.NotEmpty(t, progressions["progressions"])
}

func TestScales(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantScale  string
		wantNotes  []theory.Note
	}{
		{"A minor", "root=A&quality=minor", http.StatusOK, "naturalMinor",
			[]theory.Note{theory.A, theory.B, theory.C, theory.D, theory.E, theory.F, theory.G}},
		{"flat spelling", "root=Bb&quality=dominant7", http.StatusOK, "mixolydian", nil},
		{"unknown quality", "root=A&quality=power", http.StatusBadRequest, "", nil},
		{"unknown note", "root=H&quality=major", http.StatusBadRequest, "", nil},
		{"missing root", "quality=major", http.StatusBadRequest, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodGet, "/api/v1/scales?"+tt.query, nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, w.Body.String(), "error")
				return
			}
			resp := decode[ScaleResponse](t, w)
			require.NotNil(t, resp.Scale)
			assert.Equal(t, tt.wantScale, resp.Scale.ID)
			if tt.wantNotes != nil {
				assert.Equal(t, tt.wantNotes, resp.Notes)
			}
		})
	}
}

func TestShapes(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/api/v1/shapes?root=G&quality=major", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ShapesResponse](t, w)
	assert.Equal(t, "G", resp.Chord)
	assert.Equal(t, theory.Major, resp.Quality.ID)
	require.NotEmpty(t, resp.Shapes)
	for _, sh := range resp.Shapes {
		assert.Equal(t, theory.G, sh.Root)
		assert.Len(t, sh.StringStates, 6)
	}

	w = performRequest(router, http.MethodGet, "/api/v1/shapes?root=G&quality=mystery", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriads(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/api/v1/triads?root=C&quality=major", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[TriadsResponse](t, w)
	assert.Equal(t, "C", resp.Chord)

	ids := make([]string, len(resp.Triads))
	for i, tr := range resp.Triads {
		ids[i] = tr.ID
	}
	assert.Contains(t, ids, "triad-321-0-1-0")
}

func TestGenerateRiff(t *testing.T) {
	router := setupTestRouter(t)
	seed := int64(7)

	body := models.RiffRequest{
		ProgressionID:   "pop-axis",
		Root:            "D",
		Style:           "bass-driven",
		Seed:            &seed,
		IncludeTab:      true,
		IncludeSchedule: true,
	}
	w := performRequest(router, http.MethodPost, "/api/v1/riffs", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[RiffResponse](t, w)
	assert.Equal(t, seed, resp.Seed)
	assert.Equal(t, 120, resp.Riff.BPM)
	assert.Equal(t, models.StyleBassDriven, resp.Riff.Style)
	require.Len(t, resp.Riff.ChordRiffs, 4)
	assert.Equal(t, theory.D, resp.Riff.ChordRiffs[0].ChordRoot)
	require.NotNil(t, resp.Tab)
	assert.Len(t, resp.Tab.Measures, 4)
	require.NotNil(t, resp.Schedule)
	assert.InDelta(t, 8.0, resp.Schedule.TotalSeconds, 1e-9)

	again := decode[RiffResponse](t, performRequest(router, http.MethodPost, "/api/v1/riffs", body))
	assert.Equal(t, resp.Riff.ChordRiffs, again.Riff.ChordRiffs)
	assert.NotEqual(t, resp.Riff.ID, again.Riff.ID)
}

func TestGenerateRiffTempoAndProgression(t *testing.T) {
	router := setupTestRouter(t)

	inline := &theory.Progression{
		ID:  "two-chord",
		Key: theory.A,
		Chords: []theory.ProgressionEntry{
			{Note: theory.A, Quality: theory.Minor, Degree: "i"},
			{Note: theory.E, Quality: theory.Dominant7, Degree: "V"},
		},
	}

	tests := []struct {
		name       string
		body       models.RiffRequest
		wantStatus int
		wantBPM    int
	}{
		{"speed preset", models.RiffRequest{ProgressionID: "pop-axis", Root: "C", Speed: "fast"}, http.StatusOK, 160},
		{"bpm wins over speed", models.RiffRequest{ProgressionID: "pop-axis", Root: "C", BPM: 90, Speed: "fast"}, http.StatusOK, 90},
		{"inline progression", models.RiffRequest{Progression: inline, Root: "B", Style: "arpeggiated"}, http.StatusOK, 120},
		{"unknown speed", models.RiffRequest{ProgressionID: "pop-axis", Root: "C", Speed: "warp"}, http.StatusBadRequest, 0},
		{"unknown preset", models.RiffRequest{ProgressionID: "nope", Root: "C"}, http.StatusBadRequest, 0},
		{"no progression", models.RiffRequest{Root: "C"}, http.StatusBadRequest, 0},
		{"unknown style", models.RiffRequest{ProgressionID: "pop-axis", Root: "C", Style: "shred"}, http.StatusBadRequest, 0},
		{"unknown root", models.RiffRequest{ProgressionID: "pop-axis", Root: "X"}, http.StatusBadRequest, 0},
		{"empty inline progression", models.RiffRequest{Progression: &theory.Progression{ID: "empty"}, Root: "C"}, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/v1/riffs", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBPM, decode[RiffResponse](t, w).Riff.BPM)
			}
		})
	}
}

func TestGenerateChordRiff(t *testing.T) {
	router := setupTestRouter(t)
	seed := int64(3)

	w := performRequest(router, http.MethodPost, "/api/v1/riffs/chord", models.ChordRiffRequest{
		Root: "E", Quality: "minor", Style: "arpeggiated", NextRoot: "A", Seed: &seed,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[ChordRiffResponse](t, w)
	assert.Equal(t, "Em", resp.Chord)
	assert.Equal(t, "I", resp.Riff.ChordDegree)
	assert.Equal(t, 4, resp.Riff.TotalBeats)
	assert.NotEmpty(t, resp.Riff.Notes)

	w = performRequest(router, http.MethodPost, "/api/v1/riffs/chord", models.ChordRiffRequest{
		Root: "E", Quality: "minor", BeatsPerMeasure: 20,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/riffs/chord", map[string]string{"root": "E"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditNotes(t *testing.T) {
	router := setupTestRouter(t)

	add := models.RiffEditRequest{Riff: editableRiff(), MeasureIndex: 0, String: 1, Fret: 3, StartBeat: 1}
	w := performRequest(router, http.MethodPost, "/api/v1/riffs/notes/add", add)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	added := decode[EditResponse](t, w).Riff
	notes := added.ChordRiffs[0].Notes
	require.Len(t, notes, 3)
	assert.Equal(t, theory.G, notes[1].Note)
	assert.Equal(t, "5", notes[1].Interval)
	assert.Equal(t, 0.5, notes[1].Duration)

	update := models.RiffEditRequest{Riff: added, MeasureIndex: 0, NoteID: notes[1].ID, String: 2, Fret: 3, Note: "D"}
	w = performRequest(router, http.MethodPost, "/api/v1/riffs/notes/update", update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[EditResponse](t, w).Riff.ChordRiffs[0].Notes[1]
	assert.Equal(t, theory.D, updated.Note)
	assert.Equal(t, theory.BString, updated.String)

	remove := models.RiffEditRequest{Riff: added, MeasureIndex: 0, NoteID: notes[1].ID}
	w = performRequest(router, http.MethodPost, "/api/v1/riffs/notes/remove", remove)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, editableRiff().ChordRiffs[0].Notes, decode[EditResponse](t, w).Riff.ChordRiffs[0].Notes)
}

func TestEditNotesRejectsBadInput(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name string
		path string
		req  models.RiffEditRequest
	}{
		{"measure out of range", "add", models.RiffEditRequest{Riff: editableRiff(), MeasureIndex: 2, String: 1, Fret: 0}},
		{"bad string", "add", models.RiffEditRequest{Riff: editableRiff(), String: 7, Fret: 0}},
		{"fret past max", "add", models.RiffEditRequest{Riff: editableRiff(), String: 1, Fret: 16}},
		{"start past measure", "add", models.RiffEditRequest{Riff: editableRiff(), String: 1, Fret: 0, StartBeat: 4}},
		{"bad note", "add", models.RiffEditRequest{Riff: editableRiff(), String: 1, Fret: 0, Note: "Q"}},
		{"empty riff", "add", models.RiffEditRequest{String: 1}},
		{"update without id", "update", models.RiffEditRequest{Riff: editableRiff(), String: 1}},
		{"remove without id", "remove", models.RiffEditRequest{Riff: editableRiff()}},
		{"remove bad measure", "remove", models.RiffEditRequest{Riff: editableRiff(), MeasureIndex: -1, NoteID: "I-0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/v1/riffs/notes/"+tt.path, tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestTabAndSchedule(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(router, http.MethodPost, "/api/v1/riffs/tab", models.RiffBodyRequest{Riff: editableRiff(), Subdivisions: 16})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tab := decode[models.TabSheet](t, w)
	require.Len(t, tab.Measures, 2)
	assert.Equal(t, 16, tab.Measures[0].Subdivisions)
	assert.Equal(t, "Am", tab.Measures[1].ChordName)

	w = performRequest(router, http.MethodPost, "/api/v1/riffs/schedule", models.RiffBodyRequest{Riff: editableRiff()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	schedule := decode[models.Schedule](t, w)
	assert.Equal(t, 100, schedule.BPM)
	assert.InDelta(t, 4.8, schedule.TotalSeconds, 1e-9)
	assert.Equal(t, models.EventChord, schedule.Events[0].Kind)

	w = performRequest(router, http.MethodPost, "/api/v1/riffs/schedule", models.RiffBodyRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRiffBodyRejectsOutOfRangeNotes(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name   string
		mutate func(n *models.RiffNote)
	}{
		{"fret past max", func(n *models.RiffNote) { n.Fret = 100 }},
		{"negative duration", func(n *models.RiffNote) { n.Duration = -3 }},
		{"rings past measure", func(n *models.RiffNote) { n.Duration = 500 }},
	}

	for _, tt := range tests {
		for _, path := range []string{"tab", "schedule", "midi"} {
			t.Run(tt.name+"/"+path, func(t *testing.T) {
				r := editableRiff()
				tt.mutate(&r.ChordRiffs[0].Notes[0])

				w := performRequest(router, http.MethodPost, "/api/v1/riffs/"+path, models.RiffBodyRequest{Riff: r})
				assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			})
		}
	}
}

func TestMIDIExport(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(router, http.MethodPost, "/api/v1/riffs/midi", models.RiffBodyRequest{Riff: editableRiff()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "audio/midi", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `riff-fixture.mid`)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("MThd")))
}

func TestFindPosition(t *testing.T) {
	router := setupTestRouter(t)
	maxFret := func(n int) *int { return &n }

	tests := []struct {
		name       string
		req        models.FindPositionRequest
		wantStatus int
		wantFound  bool
		wantPos    string
	}{
		{"preferred string", models.FindPositionRequest{Note: "C", PreferredStrings: []int{2}}, http.StatusOK, true, `"string":2,"fret":1`},
		{"fallback", models.FindPositionRequest{Note: "A", PreferredStrings: []int{1}, MaxFret: maxFret(3)}, http.StatusOK, true, `"string":5,"fret":0`},
		{"open strings only", models.FindPositionRequest{Note: "C#", MaxFret: maxFret(0)}, http.StatusOK, false, ""},
		{"past max fret", models.FindPositionRequest{Note: "C", MaxFret: maxFret(30)}, http.StatusBadRequest, false, ""},
		{"inverted range", models.FindPositionRequest{Note: "C", MinFret: 9, MaxFret: maxFret(3)}, http.StatusBadRequest, false, ""},
		{"bad preferred string", models.FindPositionRequest{Note: "C", PreferredStrings: []int{7}}, http.StatusBadRequest, false, ""},
		{"missing note", models.FindPositionRequest{}, http.StatusBadRequest, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/v1/positions/find", tt.req)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decode[FindPositionResponse](t, w)
			assert.Equal(t, tt.wantFound, resp.Found)
			if tt.wantFound {
				assert.Contains(t, w.Body.String(), tt.wantPos)
			} else {
				assert.Nil(t, resp.Position)
			}
		})
	}
}

func TestAvailablePositions(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/api/v1/positions/available?root=A&quality=minor&string=1&max=12", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[AvailableResponse](t, w)
	assert.Equal(t, "Am", resp.Chord)
	assert.Len(t, resp.Choices, 8)
	assert.Equal(t, 12, resp.Range.Max)

	for _, query := range []string{
		"root=A&quality=minor&string=9",
		"root=A&quality=minor&string=1&min=5&max=3",
		"root=A&quality=minor",
	} {
		w := performRequest(router, http.MethodGet, "/api/v1/positions/available?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}
