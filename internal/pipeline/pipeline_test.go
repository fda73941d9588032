package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/metadata"
	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/vision"
)

var (
	start = time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	end   = time.Date(2024, time.May, 1, 17, 0, 0, 0, time.UTC)
)

type fakeRefresher struct {
	challenge *model.Challenge
	err       error
}

func (f *fakeRefresher) Refresh(ctx context.Context, challengeID string) (*model.Challenge, error) {
	return f.challenge, f.err
}

type fakeVerifier struct {
	ok    bool
	err   error
	calls int
}

func (f *fakeVerifier) Verify(ctx context.Context, image []byte, subject string) (bool, error) {
	f.calls++
	return f.ok, f.err
}

type fakeStore struct {
	created []*model.Submission
	err     error
}

func (f *fakeStore) CreateSubmission(ctx context.Context, s *model.Submission) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, s)
	return nil
}

type fakeUploader struct {
	url     string
	calls   int
	deletes int
}

func (f *fakeUploader) UploadSubmissionImage(ctx context.Context, image []byte, submissionID string) (string, error) {
	f.calls++
	return f.url, nil
}

func (f *fakeUploader) DeleteSubmissionImage(ctx context.Context, submissionID string) error {
	f.deletes++
	return nil
}

func activeChallenge() *model.Challenge {
	return &model.Challenge{
		ID:        "ch-1",
		Subject:   "dog",
		Latitude:  50.7366,
		Longitude: -3.5350,
		RadiusKm:  1,
		StartDate: start,
		EndDate:   end,
		Status:    model.ChallengeStatusActive,
	}
}

func goodMeta() *metadata.PhotoMeta {
	return &metadata.PhotoMeta{
		Latitude:  50.7366,
		Longitude: -3.5350,
		TakenAt:   start.Add(time.Hour),
	}
}

type testEnv struct {
	pipeline *Pipeline
	verifier *fakeVerifier
	store    *fakeStore
	uploader *fakeUploader
}

func newEnv(c *model.Challenge, meta *metadata.PhotoMeta, metaErr error) *testEnv {
	verifier := &fakeVerifier{ok: true}
	store := &fakeStore{}
	uploader := &fakeUploader{url: "https://img.example/photo.jpg"}
	p := New(&fakeRefresher{challenge: c}, verifier, store, uploader)
	p.extract = func(image []byte) (*metadata.PhotoMeta, error) {
		return meta, metaErr
	}
	return &testEnv{pipeline: p, verifier: verifier, store: store, uploader: uploader}
}

func request() Request {
	return Request{
		UserID:      "user-1",
		ChallengeID: "ch-1",
		Title:       "Good boy",
		Image:       []byte("jpeg-bytes"),
	}
}

func TestSubmitAccepted(t *testing.T) {
	env := newEnv(activeChallenge(), goodMeta(), nil)

	res, err := env.pipeline.Submit(context.Background(), request())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("rejected with reason %s, want accepted", res.Reason)
	}

	s := res.Submission
	if s == nil {
		t.Fatal("accepted result should carry the submission")
	}
	if s.ID == "" {
		t.Error("submission should get an id")
	}
	if s.Score != 0 {
		t.Errorf("initial score = %d, want 0", s.Score)
	}
	if s.Latitude != 50.7366 || s.Longitude != -3.5350 {
		t.Errorf("coordinates = %f/%f, want values from the photo metadata", s.Latitude, s.Longitude)
	}
	if s.ImageURL != "https://img.example/photo.jpg" {
		t.Errorf("image url = %s, want the uploader result", s.ImageURL)
	}
	if len(env.store.created) != 1 {
		t.Errorf("store received %d submissions, want 1", len(env.store.created))
	}
	if env.uploader.calls != 1 {
		t.Errorf("uploader called %d times, want 1", env.uploader.calls)
	}
}

func TestSubmitChallengeNotActive(t *testing.T) {
	for _, status := range []string{model.ChallengeStatusPending, model.ChallengeStatusExpired} {
		c := activeChallenge()
		c.Status = status
		env := newEnv(c, goodMeta(), nil)

		res, err := env.pipeline.Submit(context.Background(), request())
		if err != nil {
			t.Fatalf("Submit(%s): %v", status, err)
		}
		if res.Accepted || res.Reason != ReasonChallengeNotActive {
			t.Errorf("Submit(%s) reason = %s, want %s", status, res.Reason, ReasonChallengeNotActive)
		}
		// le rejet intervient avant toute lecture de la photo
		if env.verifier.calls != 0 || len(env.store.created) != 0 {
			t.Errorf("Submit(%s) should stop before verification and storage", status)
		}
	}
}

func TestSubmitImageTooLarge(t *testing.T) {
	env := newEnv(activeChallenge(), goodMeta(), nil)
	req := request()
	req.Image = bytes.Repeat([]byte{0xFF}, MaxImageBytes+1)

	res, err := env.pipeline.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Accepted || res.Reason != ReasonImageTooLarge {
		t.Errorf("reason = %s, want %s", res.Reason, ReasonImageTooLarge)
	}
}

func TestSubmitImageAtLimit(t *testing.T) {
	env := newEnv(activeChallenge(), goodMeta(), nil)
	req := request()
	req.Image = bytes.Repeat([]byte{0xFF}, MaxImageBytes)

	res, err := env.pipeline.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Accepted {
		t.Errorf("an image of exactly the limit should pass, got reason %s", res.Reason)
	}
}

func TestSubmitMetadataRejections(t *testing.T) {
	tests := []struct {
		name    string
		metaErr error
		want    Reason
	}{
		{"no metadata", metadata.ErrNoMetadata, ReasonNoMetadata},
		{"missing gps", &metadata.MissingFieldError{Field: "gps"}, ReasonMissingGPS},
		{"missing datetime", &metadata.MissingFieldError{Field: "datetime"}, ReasonMissingDatetime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(activeChallenge(), nil, tt.metaErr)

			res, err := env.pipeline.Submit(context.Background(), request())
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if res.Accepted || res.Reason != tt.want {
				t.Errorf("reason = %s, want %s", res.Reason, tt.want)
			}
			if env.verifier.calls != 0 {
				t.Error("subject verification should not run without metadata")
			}
		})
	}
}

func TestSubmitOutOfBoundsOrWindow(t *testing.T) {
	// hors zone et hors fenêtre produisent le même code de rejet
	outOfZone := goodMeta()
	outOfZone.Latitude = 51.5072
	outOfZone.Longitude = -0.1276

	outOfWindow := goodMeta()
	outOfWindow.TakenAt = end.Add(time.Hour)

	for name, meta := range map[string]*metadata.PhotoMeta{"zone": outOfZone, "window": outOfWindow} {
		env := newEnv(activeChallenge(), meta, nil)

		res, err := env.pipeline.Submit(context.Background(), request())
		if err != nil {
			t.Fatalf("Submit(%s): %v", name, err)
		}
		if res.Accepted || res.Reason != ReasonOutOfBoundsOrWindow {
			t.Errorf("Submit(%s) reason = %s, want %s", name, res.Reason, ReasonOutOfBoundsOrWindow)
		}
		if env.verifier.calls != 0 {
			t.Errorf("Submit(%s): verification should not run for an out-of-bounds photo", name)
		}
	}
}

func TestSubmitSubjectMismatch(t *testing.T) {
	env := newEnv(activeChallenge(), goodMeta(), nil)
	env.verifier.ok = false

	res, err := env.pipeline.Submit(context.Background(), request())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Accepted || res.Reason != ReasonSubjectMismatch {
		t.Errorf("reason = %s, want %s", res.Reason, ReasonSubjectMismatch)
	}
	if len(env.store.created) != 0 {
		t.Error("a mismatched photo must not be persisted")
	}
}

func TestSubmitOracleUnavailable(t *testing.T) {
	env := newEnv(activeChallenge(), goodMeta(), nil)
	env.verifier.err = vision.ErrOracleUnavailable

	res, err := env.pipeline.Submit(context.Background(), request())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Accepted || res.Reason != ReasonOracleUnavailable {
		t.Errorf("reason = %s, want %s", res.Reason, ReasonOracleUnavailable)
	}
	if !res.Retryable {
		t.Error("an oracle outage should be flagged retryable")
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	env := newEnv(activeChallenge(), goodMeta(), nil)
	env.store.err = errors.New("db down")

	if _, err := env.pipeline.Submit(context.Background(), request()); err == nil {
		t.Error("a storage failure should surface as an error, not a rejection")
	}

	// l'image déjà envoyée est nettoyée, pas laissée orpheline
	if env.uploader.deletes != 1 {
		t.Errorf("uploaded image deleted %d times, want 1", env.uploader.deletes)
	}
}

func TestSubmitNoCleanupOnSuccess(t *testing.T) {
	env := newEnv(activeChallenge(), goodMeta(), nil)

	if _, err := env.pipeline.Submit(context.Background(), request()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if env.uploader.deletes != 0 {
		t.Errorf("image deleted %d times on success, want 0", env.uploader.deletes)
	}
}

func TestReasonMessages(t *testing.T) {
	reasons := []Reason{
		ReasonChallengeNotActive, ReasonImageTooLarge, ReasonNoMetadata,
		ReasonMissingGPS, ReasonMissingDatetime, ReasonOutOfBoundsOrWindow,
		ReasonSubjectMismatch, ReasonOracleUnavailable,
	}
	for _, r := range reasons {
		if r.Message() == "" {
			t.Errorf("Reason %s has no user message", r)
		}
	}
	if ReasonNone.Message() != "" {
		t.Error("ReasonNone should have no message")
	}
}
