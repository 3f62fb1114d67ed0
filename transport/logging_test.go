package transport

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFactoryRoutesThroughLogrus(t *testing.T) {
	base, hook := test.NewNullLogger()
	entry := logrus.NewEntry(base)

	factory := NewLoggerFactory(entry)
	logger := factory.NewLogger("dtls")
	logger.Infof("handshake complete for %s", "peer-1")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.Entries[0].Level)
	assert.Contains(t, hook.Entries[0].Message, "handshake complete for peer-1")
	assert.Equal(t, "dtls", hook.Entries[0].Data["pion_scope"])
}

func TestBundledTransportLoggerFactory(t *testing.T) {
	h := NewBundledTransport(newFakeDatagramTransport())
	factory := h.LoggerFactory()
	assert.NotNil(t, factory.NewLogger("ice"))
}
