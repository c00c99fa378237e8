// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/probe-ips/pkg/types"
)

func sampleEntries() []types.RegionEntry {
	return []types.RegionEntry{
		{
			Region: "North America",
			IPv4:   []string{"192.168.1.1", "10.0.0.1"},
			IPv6:   []string{"2610:a1:00AA:128::1"},
		},
		{
			Region: "Asia-Pacific",
			IPv4:   []string{"172.16.0.9"},
			IPv6:   []string{},
		},
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleEntries(), types.FormatJSON))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"region\": \"North America\","), out)
	assert.True(t, strings.HasSuffix(out, "]\n"))
	assert.Contains(t, out, `"ipv6": []`)

	var got []types.RegionEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleEntries(), got)
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, types.FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteYAML_KeyOrderAndRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleEntries(), types.FormatYAML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "- region: North America\n"), out)
	region := strings.Index(out, "region:")
	ipv4 := strings.Index(out, "ipv4:")
	ipv6 := strings.Index(out, "ipv6:")
	assert.Less(t, region, ipv4)
	assert.Less(t, ipv4, ipv6)
	assert.NotContains(t, out, "{", "block style only")

	var got []types.RegionEntry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleEntries(), got)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleEntries(), types.FormatCSV))

	want := `Region,Type,IP Address
"North America",IPv4,192.168.1.1
"North America",IPv4,10.0.0.1
"North America",IPv6,2610:a1:00AA:128::1
"Asia-Pacific",IPv4,172.16.0.9
`
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_QuoteInRegion(t *testing.T) {
	var buf bytes.Buffer
	entries := []types.RegionEntry{{Region: `EU "West"`, IPv4: []string{"1.1.1.1"}}}
	require.NoError(t, Write(&buf, entries, types.FormatCSV))
	assert.Contains(t, buf.String(), `"EU ""West""",IPv4,1.1.1.1`)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, sampleEntries(), types.Format("xml"))
	require.Error(t, err)
	assert.Equal(t, types.FailureSerialize, types.KindOf(err))
	assert.Contains(t, err.Error(), "unsupported format: xml")
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probes.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale\n", 100)), 0o644))

	require.NoError(t, WriteFile(path, sampleEntries()[1:], types.FormatCSV))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, CSVHeader+"\n\"Asia-Pacific\",IPv4,172.16.0.9\n", string(data))
}

func TestWriteFile_BadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.json"), sampleEntries(), types.FormatJSON)
	require.Error(t, err)
	assert.Equal(t, types.FailureSerialize, types.KindOf(err))
}
