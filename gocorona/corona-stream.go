package gocorona

import (
	"fmt"
	"io"
	"strings"
)

// CoronaStream is a channel pipeline of corona values.
type CoronaStream struct {
	Outlet chan Corona
}

func NewCoronaStream() *CoronaStream {
	stream := &CoronaStream{
		Outlet: make(chan Corona),
	}
	return stream
}

func StreamCorona(c Corona) *CoronaStream {
	next := NewCoronaStream()

	go func() {
		next.Outlet <- c
		next.Close()
	}()

	return next
}

func (stream *CoronaStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *CoronaStream) PushCorona(c Corona) {
	stream.Outlet <- c
}

func (stream *CoronaStream) PullCorona() (Corona, bool) {
	c, ok := <-stream.Outlet
	return c, ok
}

// PullAll drains the stream and returns the number of coronas that passed through.
func (stream *CoronaStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains the stream into a slice, preserving stream order.
func (stream *CoronaStream) Collect() []Corona {
	var all []Corona
	for c := range stream.Outlet {
		all = append(all, c)
	}
	return all
}

// Print writes each corona passing through to out and forwards it downstream.
func (stream *CoronaStream) Print(out io.Writer, opts PrintOpts) *CoronaStream {
	next := &CoronaStream{
		Outlet: make(chan Corona, 1),
	}

	go func() {
		buf := strings.Builder{}
		buf.Grow(128)

		count := 0
		for c := range stream.Outlet {
			count++
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, "%06d,", count)
			buf.Write(c.AppendCompactTo(nil))
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- c
		}
		next.Close()
	}()

	return next
}

// AddTo pushes each corona into target, forwarding only those actually added.
func (stream *CoronaStream) AddTo(target CoronaAdder) *CoronaStream {
	next := &CoronaStream{
		Outlet: make(chan Corona, 1),
	}

	go func() {
		for c := range stream.Outlet {
			if target.TryAddCorona(c) {
				next.Outlet <- c
			}
		}
		next.Close()
	}()

	return next
}

// SelectFromStream forwards only the coronas matching sel.
func (stream *CoronaStream) SelectFromStream(sel CoronaSelector) *CoronaStream {
	next := &CoronaStream{
		Outlet: make(chan Corona, 1),
	}

	go func() {
		for c := range stream.Outlet {
			if sel.SelectsCorona(c) {
				next.Outlet <- c
			}
		}
		next.Close()
	}()

	return next
}

// SelectFromCatalog streams the coronas of cat matching sel.
func SelectFromCatalog(cat Catalog, sel CoronaSelector) *CoronaStream {
	next := &CoronaStream{
		Outlet: make(chan Corona, 1),
	}

	onHit := make(chan Corona, 4)

	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()

	go func() {
		for c := range onHit {
			next.Outlet <- c
		}
		next.Close()
	}()

	return next
}
