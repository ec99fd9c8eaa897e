package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unixNetstatOutput = `Ip:
    Forwarding: 2
    1887 total packets received
IpExt:
    InMcastPkts: 268
    OutMcastPkts: 78
    InOctets: 123456789
    OutOctets: 987654
    InMcastOctets: 34784
    OutMcastOctets: 10788
Tcp:
    1271 active connection openings
`

const windowsNetstatOutput = `Interface Statistics

                           Received            Sent

Bytes                    1033362600       461971462
Unicast packets              997504          944398
Non-unicast packets            4175            3823

Interface Statistics

                           Received            Sent

Bytes                      40000000        20000000
Unicast packets               10000            9000
`

const frenchWindowsNetstatOutput = `Statistiques de l'interface

                              Reçus         Envoyés

Octets                   1033362600       461971462
Paquets monodiffusés         997504          944398
`

func TestNetstatSource_ParseUnix(t *testing.T) {
	s := &netstatSource{name: "netstat", args: []string{"-s"}, pattern: unixPattern}

	received, sent, err := s.parse([]byte(unixNetstatOutput))
	require.NoError(t, err)
	assert.Equal(t, uint64(123456789), received)
	assert.Equal(t, uint64(987654), sent)
}

func TestNetstatSource_ParseWindows(t *testing.T) {
	s := &netstatSource{name: "netstat", args: []string{"-e", "-a"}, pattern: windowsPattern}

	t.Run("sums all adaptors", func(t *testing.T) {
		received, sent, err := s.parse([]byte(windowsNetstatOutput))
		require.NoError(t, err)
		assert.Equal(t, uint64(1033362600+40000000), received)
		assert.Equal(t, uint64(461971462+20000000), sent)
	})

	t.Run("localized output", func(t *testing.T) {
		received, sent, err := s.parse([]byte(frenchWindowsNetstatOutput))
		require.NoError(t, err)
		assert.Equal(t, uint64(1033362600), received)
		assert.Equal(t, uint64(461971462), sent)
	})
}

func TestNetstatSource_ParseNoCounters(t *testing.T) {
	s := &netstatSource{name: "netstat", args: []string{"-s"}, pattern: unixPattern}

	_, _, err := s.parse([]byte("Tcp:\n    1271 active connection openings\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
