package mmapcell

import (
	"errors"
	"time"
)

// Close releases the cell: it flushes (file-backed cells, unless disabled
// with WithFlushOnClose(false)), unmaps the record and closes the file.
//
// Every step runs even if an earlier one fails. Failures are logged as
// warnings and returned joined; Close never panics. Close is idempotent and
// pointers obtained from GetMut must not be used after it returns.
func (c *Cell[T]) Close() error {
	if c == nil {
		return nil
	}
	if c.closed.Swap(true) {
		return nil // Already closed
	}

	start := time.Now()
	var errs []error
	if c.file != nil && c.flushOnClose {
		if err := c.flush(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.m.Close(); err != nil {
		errs = append(errs, mappingError("munmap", c.path, err))
	}
	if c.file != nil {
		if err := c.file.Close(); err != nil {
			errs = append(errs, &IOError{Op: "close", Path: c.path, Err: err})
		}
	}

	err := errors.Join(errs...)
	c.metrics.RecordClose(time.Since(start), err)
	c.logger.LogClose(err)
	return err
}
