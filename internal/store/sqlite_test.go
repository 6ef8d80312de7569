package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCaseLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t)
	now := time.UnixMilli(time.Now().UnixMilli())

	if _, err := repo.GetCase(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetCase(missing) error = %v, want ErrNotFound", err)
	}

	c := domain.NewCase("c1", now)
	if err := repo.CreateCase(ctx, c); err != nil {
		t.Fatalf("CreateCase() error = %v", err)
	}

	items := []*domain.EvidenceItem{
		{ID: "e1", CaseID: "c1", Filename: "a.mp3", Kind: domain.KindAudio, Path: "/tmp/a.mp3", MIMEType: "audio/mp3", Size: 10, CreatedAt: now},
		{ID: "e2", CaseID: "c1", Filename: "b.txt", Kind: domain.KindText, Text: "hello", Size: 5, CreatedAt: now},
	}
	for _, item := range items {
		if err := repo.AddEvidence(ctx, item); err != nil {
			t.Fatalf("AddEvidence() error = %v", err)
		}
	}
	if items[0].Seq != 1 || items[1].Seq != 2 {
		t.Errorf("seq = %d, %d; want 1, 2", items[0].Seq, items[1].Seq)
	}

	c.Brief = "brief"
	c.Filename = "Doe.docx"
	c.BriefItems = 2
	c.TurnCount = 2
	if err := repo.SaveCase(ctx, c, map[string]string{"e1": "transcript"}); err != nil {
		t.Fatalf("SaveCase() error = %v", err)
	}

	got, err := repo.GetCase(ctx, "c1")
	if err != nil {
		t.Fatalf("GetCase() error = %v", err)
	}
	if got.Brief != "brief" || got.Filename != "Doe.docx" || got.BriefItems != 2 || got.TurnCount != 2 {
		t.Errorf("case = %+v", got)
	}

	want := []domain.EvidenceItem{*items[0], *items[1]}
	if diff := cmp.Diff(want, got.Evidence); diff != "" {
		t.Errorf("evidence mismatch (-want +got):\n%s", diff)
	}

	transcripts, err := repo.GetTranscripts(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"e1": "transcript"}, transcripts); diff != "" {
		t.Errorf("transcripts mismatch (-want +got):\n%s", diff)
	}

	got.Clear(now)
	if err := repo.ResetCase(ctx, got); err != nil {
		t.Fatalf("ResetCase() error = %v", err)
	}

	after, err := repo.GetCase(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Evidence) != 0 || after.Brief != "" || after.Filename != domain.DefaultBriefFilename {
		t.Errorf("case after reset = %+v", after)
	}
	transcripts, _ = repo.GetTranscripts(ctx, "c1")
	if len(transcripts) != 0 {
		t.Errorf("transcripts after reset = %v", transcripts)
	}

	// seq restarts after reset
	next := &domain.EvidenceItem{ID: "e3", CaseID: "c1", Filename: "c.txt", Kind: domain.KindText, CreatedAt: now}
	if err := repo.AddEvidence(ctx, next); err != nil {
		t.Fatal(err)
	}
	if next.Seq != 1 {
		t.Errorf("seq after reset = %d, want 1", next.Seq)
	}
}

func TestSaveCaseMissing(t *testing.T) {
	repo := newTestStore(t)
	err := repo.SaveCase(context.Background(), domain.NewCase("nope", time.Now()), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("SaveCase() error = %v, want ErrNotFound", err)
	}
}

func TestSimulationLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t)
	now := time.UnixMilli(time.Now().UnixMilli())

	sim := domain.NewSimulation("s1", now)
	if err := repo.CreateSimulation(ctx, sim); err != nil {
		t.Fatalf("CreateSimulation() error = %v", err)
	}

	sim.State = domain.SimActive
	sim.UserRole = domain.PartyDefendant
	sim.Materials = "Иск о взыскании"
	sim.Turns = []domain.ChatTurn{
		{Role: domain.RoleAssistant, Text: "Судья: заседание открыто", CreatedAt: now},
		{Role: domain.RoleUser, Text: "Возражаю", CreatedAt: now},
	}
	sim.TurnCount = 1
	if err := repo.SaveSimulation(ctx, sim); err != nil {
		t.Fatalf("SaveSimulation() error = %v", err)
	}

	got, err := repo.GetSimulation(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSimulation() error = %v", err)
	}
	if diff := cmp.Diff(sim, got); diff != "" {
		t.Errorf("simulation mismatch (-want +got):\n%s", diff)
	}

	sim.Turns = nil
	sim.State = domain.SimConfiguring
	if err := repo.SaveSimulation(ctx, sim); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.GetSimulation(ctx, "s1")
	if len(got.Turns) != 0 || got.State != domain.SimConfiguring {
		t.Errorf("simulation after clear = %+v", got)
	}

	if _, err := repo.GetSimulation(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSimulation(missing) error = %v", err)
	}
}

func TestSaveCaseRejectsBriefOverRemovedEvidence(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t)
	now := time.Now()

	c := domain.NewCase("c1", now)
	if err := repo.CreateCase(ctx, c); err != nil {
		t.Fatal(err)
	}
	if err := repo.AddEvidence(ctx, &domain.EvidenceItem{ID: "e1", CaseID: "c1", Filename: "a.txt", Kind: domain.KindText, CreatedAt: now}); err != nil {
		t.Fatal(err)
	}

	if err := repo.ResetCase(ctx, domain.NewCase("c1", now)); err != nil {
		t.Fatal(err)
	}

	c.Brief = "brief over 1 item"
	c.BriefItems = 1
	if err := repo.SaveCase(ctx, c, nil); !errors.Is(err, ErrStale) {
		t.Fatalf("SaveCase() error = %v, want ErrStale", err)
	}

	got, err := repo.GetCase(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Brief != "" || got.BriefItems != 0 {
		t.Errorf("case after rejected save = %+v", got)
	}
}

func TestLeases(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t)

	tests := []struct {
		name  string
		owner string
		ttl   time.Duration
		want  bool
	}{
		{"free", "a", time.Minute, true},
		{"held by another", "b", time.Minute, false},
		{"renewed by holder", "a", -time.Second, true},
		{"expired", "b", time.Minute, true},
		{"lost by previous holder", "a", time.Minute, false},
	}

	for _, tt := range tests {
		got, err := repo.AcquireLease(ctx, "case:1", tt.owner, tt.ttl)
		if err != nil {
			t.Fatalf("%s: AcquireLease() error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: AcquireLease(%s) = %v, want %v", tt.name, tt.owner, got, tt.want)
		}
	}

	if err := repo.ReleaseLease(ctx, "case:1", "a"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := repo.AcquireLease(ctx, "case:1", "c", time.Minute); ok {
		t.Error("release by a non-holder freed the lease")
	}

	if err := repo.ReleaseLease(ctx, "case:1", "b"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := repo.AcquireLease(ctx, "case:1", "c", time.Minute); !ok {
		t.Error("lease not free after release by its holder")
	}
	if ok, _ := repo.AcquireLease(ctx, "case:2", "a", time.Minute); !ok {
		t.Error("leases on different names conflict")
	}
}
