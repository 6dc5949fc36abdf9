// Package codec encodes a forge session to its persisted JSON blob and
// reads it back, upgrading older slot state shapes on the way in.
//
// Decoding never fails: fields that are missing or malformed keep the
// caller's defaults and the problem is logged.
package codec

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
)

// Persisted field names
const (
	fieldPlayerCount       = "playerCount"
	fieldCurrentRun        = "currentRun"
	fieldPlayerSelections  = "playerSelections"
	fieldPlayerGearStates  = "playerGearStates"
	fieldPlayerActiveSlots = "playerActiveSlots"
	fieldCompletedTasks    = "completedTasks"
	fieldActiveActID       = "activeActId"
	fieldPlayerNames       = "playerNames"
)

// ActSource reports which acts exist
type ActSource interface {
	HasAct(act entities.ActID) bool
}

// Encode serialises a session to its JSON blob
func Encode(s entities.Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session")
	}
	return b, nil
}

// DecodeInput is the input for Decode
type DecodeInput struct {
	Blob []byte
	// Defaults is returned for every field the blob cannot supply
	Defaults entities.Session
	Acts     ActSource
}

// DecodeOutput is the output of Decode
type DecodeOutput struct {
	Session entities.Session
	// Recovered is true when some part of the blob was discarded
	Recovered bool
}

// Decode hydrates a session from a blob field by field. Player count is
// only taken in the supported range and the active act only when known.
func Decode(input *DecodeInput) *DecodeOutput {
	out := &DecodeOutput{Session: input.Defaults}
	if len(bytes.TrimSpace(input.Blob)) == 0 {
		return out
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(input.Blob, &fields); err != nil {
		slog.Warn("Failed to hydrate saved run", "error", err)
		out.Recovered = true
		return out
	}

	warn := func(field string, err error) {
		slog.Warn("Discarding malformed saved field", "field", field, "error", err)
		out.Recovered = true
	}

	s := &out.Session

	if raw, ok := present(fields, fieldPlayerCount); ok {
		var n float64
		switch err := json.Unmarshal(raw, &n); {
		case err != nil:
			warn(fieldPlayerCount, err)
		case n != math.Trunc(n) || n < entities.MinPlayerCount || n > entities.MaxPlayerCount:
			warn(fieldPlayerCount, errors.InvalidArgumentf("player count %v outside %d..%d",
				n, entities.MinPlayerCount, entities.MaxPlayerCount))
		default:
			s.PlayerCount = int(n)
		}
	}

	if raw, ok := present(fields, fieldCurrentRun); ok {
		var run entities.RunResult
		if err := json.Unmarshal(raw, &run); err != nil {
			warn(fieldCurrentRun, err)
		} else {
			s.CurrentRun = run
		}
	}

	if raw, ok := present(fields, fieldPlayerSelections); ok {
		if m, err := playerStringMap(raw, true); err != nil {
			warn(fieldPlayerSelections, err)
		} else {
			s.PlayerSelections = m
		}
	}

	if raw, ok := present(fields, fieldPlayerGearStates); ok {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			warn(fieldPlayerGearStates, err)
		} else {
			s.PlayerGearStates = NormalizeGearStates(v)
		}
	}

	if raw, ok := present(fields, fieldPlayerActiveSlots); ok {
		if m, err := playerStringMap(raw, true); err != nil {
			warn(fieldPlayerActiveSlots, err)
		} else {
			s.PlayerActiveSlots = m
		}
	}

	if raw, ok := present(fields, fieldCompletedTasks); ok {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			warn(fieldCompletedTasks, err)
		} else {
			tasks := make(map[string]bool, len(m))
			for id, v := range m {
				if done, _ := v.(bool); done {
					tasks[id] = true
				}
			}
			s.CompletedTasks = tasks
		}
	}

	if raw, ok := present(fields, fieldActiveActID); ok {
		var act string
		if err := json.Unmarshal(raw, &act); err != nil {
			warn(fieldActiveActID, err)
		} else if input.Acts != nil && input.Acts.HasAct(entities.ActID(act)) {
			s.ActiveActID = entities.ActID(act)
		}
	}

	if raw, ok := present(fields, fieldPlayerNames); ok {
		if m, err := playerStringMap(raw, false); err != nil {
			warn(fieldPlayerNames, err)
		} else {
			s.PlayerNames = m
		}
	}

	return out
}

// present returns a field's raw value unless it is absent or null
func present(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// playerStringMap reads an object keyed by player number. Non-integer keys
// and non-string values are skipped.
func playerStringMap(raw json.RawMessage, skipEmpty bool) (map[int]string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	out := make(map[int]string, len(m))
	for key, v := range m {
		player, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		str, ok := v.(string)
		if !ok || (skipEmpty && str == "") {
			continue
		}
		out[player] = str
	}
	return out, nil
}
