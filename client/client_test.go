package client

import (
	"testing"
	"time"

	"github.com/robmorgan/blink/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

type fakeClient struct {
	name     string
	log      *[]string
	disposed int
	props    notify.PropertyNotifier
}

func newFakeClient(name string, log *[]string) *fakeClient {
	return &fakeClient{name: name, log: log}
}

func (f *fakeClient) Kind() Kind { return KindColor }
func (f *fakeClient) Initialize() error { return nil }
func (f *fakeClient) BlinkOn() { *f.log = append(*f.log, f.name+":on") }
func (f *fakeClient) BlinkOff() { *f.log = append(*f.log, f.name+":off") }
func (f *fakeClient) Dispose() { f.disposed++ }
func (f *fakeClient) blinkingClient() {}
func (f *fakeClient) Subscribe(fn func(string)) *notify.Subscription {
	return f.props.Subscribe(fn)
}

func newFakeClock() *testingclock.FakeClock {
	return testingclock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in       string
		expected Kind
		ok       bool
	}{
		{"color", KindColor, true},
		{"Opacity", KindOpacity, true},
		{" color ", KindColor, true},
		{"brush", 0, false},
		{"", 0, false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.in, func(t *testing.T) {
			t.Parallel()
			kind, err := ParseKind(testCase.in)
			if !testCase.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, kind)
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "color", KindColor.String())
	assert.Equal(t, "opacity", KindOpacity.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}
