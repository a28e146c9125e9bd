// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"

	"github.com/cockroachdb/logtags"
)

// AmbientContext is a helper type used to "annotate" context.Contexts with log
// tags. It is intended to be embedded or stored in long-lived objects that
// perform work on behalf of short-lived calls which do not carry a context of
// their own.
//
// The zero value is usable and annotates nothing.
type AmbientContext struct {
	tags *logtags.Buffer
}

// AddLogTag adds a tag to the ambient context.
func (ac *AmbientContext) AddLogTag(name string, value interface{}) {
	if ac.tags == nil {
		ac.tags = logtags.SingleTagBuffer(name, value)
		return
	}
	ac.tags = ac.tags.Add(name, value)
}

// AnnotateCtx annotates a given context with the information in
// AmbientContext. Tags already present in ctx are kept; ambient tags with the
// same name override them.
func (ac *AmbientContext) AnnotateCtx(ctx context.Context) context.Context {
	if ac.tags == nil {
		return ctx
	}
	return logtags.AddTags(ctx, ac.tags)
}

// ResetAndAnnotateCtx annotates a given context with the information in
// AmbientContext, but unlike AnnotateCtx, it drops all log tags in the
// supplied context before adding the ones from the AmbientContext.
func (ac *AmbientContext) ResetAndAnnotateCtx(ctx context.Context) context.Context {
	return logtags.WithTags(ctx, ac.tags)
}
