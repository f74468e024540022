package engine

import (
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/blink/logger"
	"github.com/sirupsen/logrus"
)

// Guard runs a timer callback. A panic escaping fn is logged with its stack trace and
// raised again on the calling context, so a broken handler surfaces instead of leaving
// half-updated state behind.
func Guard(source string, fn func()) {
	defer errors.Recover(func(cause error) {
		logger.GetProjectLogger().
			WithFields(logrus.Fields{"source": source}).
			Errorf("tick handler panicked: %s", errors.PrintErrorWithStackTrace(cause))
		panic(cause)
	})
	fn()
}

// PostOrRun posts fn to poster, or runs it inline when poster is nil.
func PostOrRun(poster Poster, fn func()) {
	if poster == nil {
		fn()
		return
	}
	poster.Post(fn)
}
