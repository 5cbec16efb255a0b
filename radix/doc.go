// Package radix provides least-significant-digit radix sorts over fixed-width
// unsigned keys that carry a parallel slice of values (typically record
// indices) in lock-step.
//
// # Kernels
//
//   - Sort: sequential LSD radix sort using a caller-supplied workspace.
//   - ParallelSort: the same algorithm split into contiguous batches that run on
//     an Executor, with the calling goroutine working one batch itself.
//   - SortNumbers: convenience entry for native numeric slices that allocates
//     its own workspace and picks the number system from the element type.
//
// Both kernels are stable and ping-pong between the caller's buffers and the
// workspace; the result always ends up in the caller's buffers.
//
// # Keys
//
// Keys are expected to be unsigned sort keys (see package keycodec). For raw
// two's-complement or IEEE bit patterns, pass WithNumberSystem(Signed) or
// WithNumberSystem(Float) and the kernels position the sign-carrying bucket of
// the top digit group themselves. With the Float number system -0.0 sorts
// immediately before +0.0, matching keycodec.EncodeFloat32.
//
// # Workspace
//
// WorkspaceSize and ParallelWorkspaceSize report the minimum workspace length.
// The parallel workspace also holds one row of bucket counters per batch, so it
// is larger than the input. Shorter buffers fail with ErrSize before anything is
// modified.
//
// # Example
//
//	keys := make([]uint64, len(records))
//	index := make([]int32, len(records))
//	for i, r := range records {
//	    keys[i], _ = keycodec.Release(r.ReleaseDate, r.Price)
//	    index[i] = int32(i)
//	}
//	size, _ := radix.ParallelWorkspaceSize(len(keys))
//	ws := make([]uint64, size)
//	wsIndex := make([]int32, len(keys))
//	if _, err := radix.ParallelSort(keys, index, ws, wsIndex); err != nil {
//	    return err
//	}
//	for _, i := range index {
//	    visit(records[i])
//	}
package radix
