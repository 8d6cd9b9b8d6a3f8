// Package driver pumps a reassembled TIC line stream through checksum
// validation, decoding and the sensor cache, and pushes emitted readings to
// the configured handlers.
package driver

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/openlinky/linky_tic/pkg/sensor"
	"github.com/openlinky/linky_tic/pkg/source"
	"github.com/openlinky/linky_tic/pkg/tic"
)

// Diagnostic is a textual fault notice for subscribers: bad checksum, bad
// record, transport trouble.
type Diagnostic struct {
	Kind   string `json:"diagnostic"`
	Detail string `json:"detail"`
}

const (
	DiagChecksum = "checksum_error"
	DiagParse    = "parse_error"
	DiagIO       = "io_error"
)

// Options tunes a Driver beyond its mandatory collaborators.
type Options struct {
	// OnEvent receives every emitted sensor reading. Required.
	OnEvent func(sensor.Event)
	// OnDiagnostic receives fault notices. Optional.
	OnDiagnostic func(Diagnostic)
	// BroadcastChecksumErrors forwards checksum faults to OnDiagnostic.
	// They are always logged; whether subscribers care is deployment policy.
	BroadcastChecksumErrors bool
}

// Driver drains lines from one source through the decode pipeline. It keeps
// no pipeline state of its own: everything lives in the LineReader's ring
// and the sensor cache.
type Driver struct {
	src   source.Chunker
	lines *source.LineReader
	cache *sensor.Cache
	log   *zap.SugaredLogger
	opts  Options
}

func New(src source.Chunker, cache *sensor.Cache, log *zap.SugaredLogger, opts Options) *Driver {
	return &Driver{
		src:   src,
		lines: source.NewLineReader(src),
		cache: cache,
		log:   log,
		opts:  opts,
	}
}

// Pump processes lines until the source fails, returning the number of
// lines handled and the terminating error. Per-line faults (checksum,
// parse, oversized line) are logged, optionally broadcast, and skipped;
// they never stop the loop.
func (d *Driver) Pump() (int, error) {
	buf := make([]byte, 256)
	processed := 0

	for {
		n, err := d.lines.ReadLine(buf)
		if err != nil {
			if errors.Is(err, source.ErrLineTooLong) {
				d.log.Warnw("dropping oversized line", "error", err)
				continue
			}
			return processed, err
		}
		processed++

		text, err := tic.Validate(buf[:n])
		if err != nil {
			var sumErr *tic.ChecksumError
			switch {
			case errors.As(err, &sumErr):
				d.log.Warnw("checksum mismatch, frame dropped", "line", sumErr.Line)
				if d.opts.BroadcastChecksumErrors {
					d.diagnose(DiagChecksum, sumErr.Line)
				}
				continue
			case errors.Is(err, tic.ErrLineTooShort):
				continue
			default:
				// Non-UTF8 content: the medium is assumed text-safe, so
				// treat it as a transport fault.
				return processed, err
			}
		}

		msg, err := tic.Decode(text)
		if err != nil {
			d.log.Warnw("unparseable record, frame dropped", "text", text)
			d.diagnose(DiagParse, text)
			continue
		}
		if msg.Kind == tic.KindNoData || msg.Kind == tic.KindIgnored {
			continue
		}

		if ev, ok := d.cache.Update(msg); ok {
			d.opts.OnEvent(ev)
		}
	}
}

// Run pumps until ctx is cancelled, reopening the source after fatal I/O
// errors. Reopening resets the reassembly buffer in the same step so stale
// partial-line bytes never survive a reconnect. Gives up after too many
// consecutive failures without a single processed line.
func (d *Driver) Run(ctx context.Context) error {
	const maxErrors = 10

	go func() {
		<-ctx.Done()
		d.src.Close()
	}()

	consecutiveErrors := 0
	for {
		processed, err := d.Pump()
		if ctx.Err() != nil {
			return nil
		}
		if processed > 0 {
			consecutiveErrors = 0
		}

		consecutiveErrors++
		d.log.Errorw("source failed, reopening", "error", err,
			"attempt", consecutiveErrors, "max", maxErrors)
		d.diagnose(DiagIO, err.Error())
		if consecutiveErrors >= maxErrors {
			return err
		}

		d.src.Close()
		d.lines.Reset()
		time.Sleep(time.Second)
		if ctx.Err() != nil {
			return nil
		}
		if openErr := d.src.Open(); openErr != nil {
			d.log.Errorw("reopen failed", "error", openErr)
		}
	}
}

func (d *Driver) diagnose(kind, detail string) {
	if d.opts.OnDiagnostic != nil {
		d.opts.OnDiagnostic(Diagnostic{Kind: kind, Detail: detail})
	}
}
