package seqclass

import (
	"errors"

	"termev/internal/termin"
)

var (
	// ErrNoMatch means the classifier does not claim the input at all;
	// the caller should offer it to the next classifier.
	ErrNoMatch = errors.New("sequence not recognized by this classifier")

	// ErrMalformed means the classifier claims the prefix but the rest
	// of the sequence is bad or cut short. The caller may retry the
	// identical input once more bytes have arrived.
	ErrMalformed = errors.New("malformed sequence")
)

// Classifier attempts to decode one event from the start of in. On
// success it returns the event and the unconsumed remainder. It fails
// with ErrNoMatch or ErrMalformed, never anything else.
type Classifier func(in string) (termin.Event, string, error)

// Dispatch offers in to each classifier in order and commits to the
// first that does not return ErrNoMatch. If all decline, the input is
// returned untouched with ErrNoMatch.
func Dispatch(in string, classifiers ...Classifier) (termin.Event, string, error) {
	for _, classify := range classifiers {
		event, rest, err := classify(in)
		if errors.Is(err, ErrNoMatch) {
			continue
		}

		return event, rest, err
	}

	return nil, in, ErrNoMatch
}
