// Package buffer provides the thread-safe containers behind a
// producer-consumer run.
//
//   - BoundedBuffer: a fixed-capacity FIFO queue. Produce blocks while the
//     buffer is full, Consume blocks while it is empty. Both unblock with
//     ErrInterrupted when the caller's context is done.
//
//   - Sink: a growable append-only list used as a consumer's destination.
//
//   - Ring: a fixed-size window that keeps the most recent items, overwriting
//     the oldest.
//
// Example usage:
//
//	bb, err := buffer.NewBounded[string](5)
//	if err != nil {
//		return err
//	}
//
//	go func() {
//		for _, item := range []string{"a", "b", "c"} {
//			if err := bb.Produce(ctx, item); err != nil {
//				return
//			}
//		}
//	}()
//
//	for range 3 {
//		item, err := bb.Consume(ctx)
//		if errors.Is(err, buffer.ErrInterrupted) {
//			break
//		}
//		fmt.Println(item)
//	}
package buffer
