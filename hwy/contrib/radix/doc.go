// Package radix implements the counting phase of an LSD radix sort on the
// device runtime in hwy/contrib/device.
//
// The input is split into blocks of BlockSize elements and the blocks are
// spread over Segments thread-groups. Every lane of a group tallies the
// digit of each element it visits, and the group reduces the tallies in
// group-local memory into one counter per bucket. The result is a
// bucket-major histogram:
//
//	counts[(segments+1)*bucket + segment]
//
// Column segments of every bucket row is reserved for the scan phase and is
// never written by the kernel.
//
// # Example Usage
//
//	import (
//	    "github.com/ajroetker/radixcount/hwy/contrib/device"
//	    "github.com/ajroetker/radixcount/hwy/contrib/radix"
//	)
//
//	q := device.NewQueue()
//	defer q.Close()
//
//	k, _ := radix.NewKernel[int64, int64](radix.Config{DigitBits: 4})
//	counts := make([]int64, radix.HistogramLen(k.Buckets(), segments))
//	ev := k.Submit(ctx, q, values, counts, segments, 256, 0, nil)
//	if err := ev.Wait(ctx); err != nil {
//	    return err
//	}
//
// The Array based entry point SortCount validates its arguments first and
// reports a *ValidationError before anything is submitted.
//
// # Preconditions
//
// BlockSize must be a power of two no smaller than the bucket count, and the
// radix offset must be a multiple of DigitBits. Violations give wrong counts
// but never fault. Build with -tags radixdebug to turn them into panics.
package radix
