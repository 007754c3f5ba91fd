package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/gameevent"
	"github.com/fieldgames/domination/internal/platform/keylock"
	"github.com/fieldgames/domination/internal/platform/logging"
)

func newCaptureFixture(games *stubGameRepo, points *stubPointRepo, events *stubEventRepo) *CaptureService {
	svc := NewCaptureService(games, points, events, &stubIDGenerator{}, keylock.New(), logging.NewNop())
	svc.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return svc
}

func neutralPoint(id, gameID, code string) controlpoint.ControlPoint {
	return controlpoint.ControlPoint{
		ID:          id,
		GameID:      gameID,
		Name:        "Point " + id,
		CaptureCode: code,
		Status:      controlpoint.StatusInactive,
	}
}

func TestCaptureAppendsEventAndUpdatesOwner(t *testing.T) {
	t.Parallel()

	points := newStubPointRepo(neutralPoint("cp1", "g1", "1234"))
	events := &stubEventRepo{}
	svc := newCaptureFixture(newStubGameRepo(), points, events)

	got, err := svc.Capture(context.Background(), "cp1", strPtr("A"))
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	if got.Status != controlpoint.StatusControlled || got.OwnerTeamID == nil || *got.OwnerTeamID != "A" {
		t.Fatalf("returned point = %+v, want controlled by A", got)
	}

	stored := points.get("cp1")
	if stored.Status != controlpoint.StatusControlled || stored.OwnerTeamID == nil || *stored.OwnerTeamID != "A" {
		t.Fatalf("stored point = %+v, want controlled by A", stored)
	}

	appended := events.appended()
	if len(appended) != 1 {
		t.Fatalf("appended %d events, want 1", len(appended))
	}
	event := appended[0]
	if event.Type != gameevent.TypeCapture {
		t.Fatalf("event type = %s, want %s", event.Type, gameevent.TypeCapture)
	}
	if event.PreviousOwnerTeamID != nil {
		t.Fatalf("previous owner = %v, want nil", *event.PreviousOwnerTeamID)
	}
	if event.ActingTeamID == nil || *event.ActingTeamID != "A" {
		t.Fatalf("acting team = %v, want A", event.ActingTeamID)
	}
}

func TestCaptureByCurrentOwnerIsNoop(t *testing.T) {
	t.Parallel()

	points := newStubPointRepo(neutralPoint("cp1", "g1", "1234"))
	events := &stubEventRepo{}
	svc := newCaptureFixture(newStubGameRepo(), points, events)

	if _, err := svc.Capture(context.Background(), "cp1", strPtr("A")); err != nil {
		t.Fatalf("first Capture() error = %v", err)
	}
	if _, err := svc.Capture(context.Background(), "cp1", strPtr("A")); err != nil {
		t.Fatalf("second Capture() error = %v", err)
	}

	if got := len(events.appended()); got != 1 {
		t.Fatalf("appended %d events, want 1 (repeat capture is a no-op)", got)
	}
	stored := points.get("cp1")
	if stored.OwnerTeamID == nil || *stored.OwnerTeamID != "A" {
		t.Fatalf("stored point = %+v, want still owned by A", stored)
	}
}

func TestCaptureMakesPointNeutral(t *testing.T) {
	t.Parallel()

	owned := neutralPoint("cp1", "g1", "1234")
	owned.Status = controlpoint.StatusControlled
	owned.OwnerTeamID = strPtr("A")

	points := newStubPointRepo(owned)
	events := &stubEventRepo{}
	svc := newCaptureFixture(newStubGameRepo(), points, events)

	got, err := svc.Capture(context.Background(), "cp1", nil)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if got.Status != controlpoint.StatusInactive || got.OwnerTeamID != nil {
		t.Fatalf("returned point = %+v, want inactive with no owner", got)
	}

	appended := events.appended()
	if len(appended) != 1 {
		t.Fatalf("appended %d events, want 1", len(appended))
	}
	if appended[0].ActingTeamID != nil {
		t.Fatalf("acting team = %v, want nil for neutralizing capture", *appended[0].ActingTeamID)
	}
	if appended[0].PreviousOwnerTeamID == nil || *appended[0].PreviousOwnerTeamID != "A" {
		t.Fatalf("previous owner = %v, want A", appended[0].PreviousOwnerTeamID)
	}
}

func TestCaptureUnknownPoint(t *testing.T) {
	t.Parallel()

	events := &stubEventRepo{}
	svc := newCaptureFixture(newStubGameRepo(), newStubPointRepo(), events)

	_, err := svc.Capture(context.Background(), "missing", strPtr("A"))
	assertErrorIs(t, err, ErrNotFound)

	if got := len(events.appended()); got != 0 {
		t.Fatalf("appended %d events on failed capture, want 0", got)
	}
}

func TestCaptureByCode(t *testing.T) {
	t.Parallel()

	games := newStubGameRepo(game.Game{ID: "g1", Name: "Friday", Status: game.StatusActive})
	points := newStubPointRepo(neutralPoint("cp1", "g1", "4711"))
	events := &stubEventRepo{}
	svc := newCaptureFixture(games, points, events)

	got, err := svc.CaptureByCode(context.Background(), "4711", "A")
	if err != nil {
		t.Fatalf("CaptureByCode() error = %v", err)
	}
	if got.ID != "cp1" || got.OwnerTeamID == nil || *got.OwnerTeamID != "A" {
		t.Fatalf("CaptureByCode() = %+v, want cp1 owned by A", got)
	}
}

func TestCaptureByCodeNoActiveGame(t *testing.T) {
	t.Parallel()

	games := newStubGameRepo(game.Game{ID: "g1", Name: "Friday", Status: game.StatusScheduled})
	svc := newCaptureFixture(games, newStubPointRepo(neutralPoint("cp1", "g1", "4711")), &stubEventRepo{})

	_, err := svc.CaptureByCode(context.Background(), "4711", "A")
	assertErrorIs(t, err, ErrWrongState)
}

func TestCaptureByCodeUnknownCode(t *testing.T) {
	t.Parallel()

	games := newStubGameRepo(game.Game{ID: "g1", Name: "Friday", Status: game.StatusActive})
	svc := newCaptureFixture(games, newStubPointRepo(neutralPoint("cp1", "g1", "4711")), &stubEventRepo{})

	_, err := svc.CaptureByCode(context.Background(), "9999", "A")
	assertErrorIs(t, err, ErrNotFound)
}

func TestCaptureByCodeValidatesInput(t *testing.T) {
	t.Parallel()

	svc := newCaptureFixture(newStubGameRepo(), newStubPointRepo(), &stubEventRepo{})

	_, err := svc.CaptureByCode(context.Background(), "", "A")
	assertErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CaptureByCode(context.Background(), "4711", "  ")
	assertErrorIs(t, err, ErrInvalidInput)
}
