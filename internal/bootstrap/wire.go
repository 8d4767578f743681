package bootstrap

import (
	"context"
	"io"

	"promptbooth/internal/audio"
	"promptbooth/internal/config"
	"promptbooth/internal/corpus"
	"promptbooth/internal/ident"
	"promptbooth/internal/logger"
	"promptbooth/internal/ports"
	"promptbooth/internal/rules"
	"promptbooth/internal/storage"
	"promptbooth/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Controller *usecase.RecordingController
	Loader     *corpus.Loader
	Config     config.Config

	committer ports.Committer
}

// Close tears down the controller and any transport resources.
func (s Services) Close() {
	if s.Controller != nil {
		s.Controller.Close()
	}
	if closer, ok := s.committer.(io.Closer); ok {
		_ = closer.Close()
	}
}

// Build wires all backend dependencies for the current runtime. A
// configured bucket selects the Cloud Storage committer; otherwise the
// simulated committer stands in for the dataset transport.
func Build(ctx context.Context, events ports.EventSink) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}

	log := logger.New()

	normalizer, err := rules.NewNormalizer(cfg.Rules.Path, cfg.Rules.IterationLimit)
	if err != nil {
		return Services{}, err
	}

	loader := corpus.NewLoader(cfg.Corpus.URL, cfg.Corpus.FetchTimeout, normalizer, log)

	var committer ports.Committer
	if cfg.Storage.Bucket != "" {
		gcs, err := storage.NewGCSCommitter(ctx, cfg.Storage.Bucket, cfg.Storage.DatasetRoot)
		if err != nil {
			return Services{}, err
		}
		committer = gcs
	} else {
		committer = storage.NewSimulatedCommitter(cfg.Storage.SubmitDelay, log)
	}

	controller := usecase.NewRecordingController(
		audio.NewMicCapture(cfg.Audio.RecorderCommand),
		committer,
		loader,
		events,
		ident.NewGenerator(),
		log,
		usecase.Config{
			Audio: ports.AudioConfig{
				SampleRate:  cfg.Audio.SampleRate,
				Channels:    cfg.Audio.Channels,
				InputFormat: cfg.Audio.InputFormat,
				InputDevice: cfg.Audio.InputDevice,
			},
			ChunkSize:   cfg.Session.ChunkSize,
			DrawSize:    cfg.Session.DrawSize,
			CommitLimit: cfg.Session.CommitLimit,
		},
	)

	return Services{
		Controller: controller,
		Loader:     loader,
		Config:     cfg,
		committer:  committer,
	}, nil
}
