package usecase

import (
	"errors"
	"fmt"
	"io"

	"promptbooth/internal/domain"
	"promptbooth/internal/ports"
)

// pumpAudioSegments drains the capture device into the attempt's segment
// buffer until the device is released.
func pumpAudioSegments(
	audio ports.AudioSession,
	segments *segmentBuffer,
	chunkSize int,
	events ports.EventSink,
	done chan struct{},
) {
	defer close(done)

	if chunkSize < 256 {
		chunkSize = 4096
	}

	buf := make([]byte, chunkSize)
	for {
		n, err := audio.Read(buf)
		if n > 0 {
			segments.Append(buf[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				events.SessionError(domain.ErrorCodeAudioStream, fmt.Sprintf("audio capture error: %v", err))
			}
			return
		}
	}
}
