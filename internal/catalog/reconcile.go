package catalog

import (
	"github.com/agentstation/atlas/pkg/datasources"
	"github.com/agentstation/atlas/pkg/errors"
	"github.com/agentstation/atlas/pkg/save"
)

// Outcome is what ReconcileAndWrite did with a descriptor.
type Outcome string

// Write outcomes.
const (
	// OutcomeCreated means no file existed and one was written.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means the in-memory copy was newer and replaced the file.
	OutcomeUpdated Outcome = "updated"
	// OutcomeForced means the file was replaced because of a forced overwrite.
	OutcomeForced Outcome = "forced"
	// OutcomeSkipped means the file was left as it was.
	OutcomeSkipped Outcome = "skipped"
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	return string(o)
}

// Written reports whether the outcome changed a file.
func (o Outcome) Written() bool {
	return o != OutcomeSkipped
}

// WriteResult describes one ReconcileAndWrite call.
type WriteResult struct {
	ID      string  `json:"id" yaml:"id"`
	Path    string  `json:"path" yaml:"path"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
}

// ReconcileAndWrite compares d against the file of the same identifier and
// decides whether to persist it.
//
//   - No file: d is written, whatever the options say.
//   - d.DateModified later than the file's: d is written if UpdateExisting
//     is set (the default).
//   - Otherwise: d is written only with ForceOverwrite.
//
// When an existing file is replaced, the written dateCreated is the earlier
// and dateModified the later of the two copies, and d is updated to match.
// On every write a dateCreated later than dateModified is clamped to it.
// A skipped write leaves both d and the file untouched and returns no error.
func (s *Store) ReconcileAndWrite(d *datasources.Descriptor, opts ...save.Option) (WriteResult, error) {
	if d == nil {
		return WriteResult{}, errors.NewValidationError("descriptor", nil, "cannot be nil")
	}
	if err := datasources.ValidateIdentifier(d.ID); err != nil {
		return WriteResult{ID: d.ID}, err
	}

	options := save.Defaults().Apply(opts...)
	path := s.Path(d.ID)
	result := WriteResult{ID: d.ID, Path: path}

	onDisk, err := s.LoadOne(path)
	switch {
	case errors.IsNotFound(err):
		onDisk = nil
	case err != nil:
		return result, err
	}

	newer := onDisk == nil || d.NewerThan(onDisk)
	switch {
	case onDisk == nil:
		result.Outcome = OutcomeCreated
	case newer && options.UpdateExisting():
		result.Outcome = OutcomeUpdated
	case options.ForceOverwrite():
		result.Outcome = OutcomeForced
	default:
		result.Outcome = OutcomeSkipped
		s.logger.Debug().
			Str("layer_id", d.ID).
			Bool("newer", newer).
			Msg("Skipped descriptor write")
		return result, nil
	}

	out := d.Clone()
	if onDisk != nil {
		mergeTimestamps(out, onDisk)
	}
	out.ClampCreated()

	data, err := datasources.Encode(out)
	if err != nil {
		return result, errors.WrapResource("write", "descriptor", d.ID, err)
	}
	if err := s.writeFile(path, data); err != nil {
		return result, err
	}

	d.DateCreated = out.DateCreated
	d.DateModified = out.DateModified

	s.logger.Debug().
		Str("layer_id", d.ID).
		Str("outcome", result.Outcome.String()).
		Msg("Wrote descriptor")
	return result, nil
}

// WriteAll reconciles every registered descriptor in identifier order and
// then refreshes the metadata. It stops at the first error; results for
// the entries handled so far are returned with it.
func (s *Store) WriteAll(opts ...save.Option) ([]WriteResult, error) {
	list := s.registry.List()
	results := make([]WriteResult, 0, len(list))

	for i, d := range list {
		s.logger.Info().
			Str("layer_id", d.ID).
			Int("index", i+1).
			Int("total", len(list)).
			Msg("Writing descriptor")

		result, err := s.ReconcileAndWrite(d, opts...)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		if s.progress != nil {
			s.progress(i+1, len(list), result)
		}
	}

	if err := s.RefreshMetadata(); err != nil {
		return results, err
	}
	return results, nil
}

// mergeTimestamps keeps the earlier creation and the later modification time.
func mergeTimestamps(d, onDisk *datasources.Descriptor) {
	if onDisk.DateCreated.Time.Before(d.DateCreated.Time) {
		d.DateCreated = onDisk.DateCreated
	}
	if onDisk.DateModified.Time.After(d.DateModified.Time) {
		d.DateModified = onDisk.DateModified
	}
}
