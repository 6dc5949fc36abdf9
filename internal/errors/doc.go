// Package errors provides structured errors for the honor run forge.
//
// Errors carry a Code, a message, an optional cause and metadata. Codes are
// compared by errors.Is, so callers can test for a category without caring
// about the message:
//
//	item, err := random.PickOne(roller, pool)
//	if errors.IsEmptyInput(err) {
//	    // the caller broke the non-empty pool contract
//	}
//
// Wrapping keeps the code of the innermost structured error:
//
//	if err := repo.Put(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save session")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("storage_key", cfg.StorageKey, vb)
//	errors.ValidateRange("player_count", n, 1, 4, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Codes
//
//   - InvalidArgument: bad input or configuration
//   - NotFound: missing record or catalog entry
//   - FailedPrecondition: operation not allowed in the current state
//   - Internal: storage or encoding failure
//   - DataLoss: persisted data that could not be understood
//   - Unavailable: backing store unreachable
//   - EmptyInput: sampling from an empty candidate set
//   - InvalidRange: numeric range with max below min
package errors
