//go:build integration

package integration

import (
	"bufio"
	"encoding/json"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleInput = "seeds: 79 14 55 13\n\n" +
	"seed-to-soil map:\n50 98 2\n52 50 48\n\n" +
	"soil-to-fertilizer map:\n0 15 37\n37 52 2\n39 0 15\n\n" +
	"fertilizer-to-water map:\n49 53 8\n0 11 42\n42 0 7\n57 7 4\n\n" +
	"water-to-light map:\n88 18 7\n18 25 70\n\n" +
	"light-to-temperature map:\n45 77 23\n81 45 19\n68 64 13\n\n" +
	"temperature-to-humidity map:\n0 69 1\n1 0 69\n\n" +
	"humidity-to-location map:\n60 56 37\n56 93 4\n"

// getProjectRoot returns the path to the almanac project root
func getProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	// tests/integration/serve_test.go -> project root
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// startServe builds the binary and starts "almanac serve".
func startServe(t *testing.T) (*exec.Cmd, io.WriteCloser, *bufio.Scanner) {
	t.Helper()
	projectRoot := getProjectRoot()
	binary := filepath.Join(t.TempDir(), "almanac")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/almanac")
	buildCmd.Dir = projectRoot
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(output))

	cmd := exec.Command(binary, "serve")
	cmd.Dir = projectRoot

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)

	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)

	require.NoError(t, cmd.Start())

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	require.True(t, waitForLine(scanner, 60*time.Second), "should receive ready signal")
	return cmd, stdin, scanner
}

func solveRequest(t *testing.T, part int, input string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"part": part, "input": input})
	require.NoError(t, err)
	line, err := json.Marshal(map[string]any{"type": "solve", "payload": json.RawMessage(payload)})
	require.NoError(t, err)
	return string(line) + "\n"
}

func waitForLine(scanner *bufio.Scanner, timeout time.Duration) bool {
	done := make(chan bool, 1)
	go func() {
		done <- scanner.Scan()
	}()

	select {
	case result := <-done:
		return result
	case <-time.After(timeout):
		return false
	}
}

func TestServeIntegration_SolveBothParts(t *testing.T) {
	cmd, stdin, scanner := startServe(t)
	defer func() {
		stdin.Close()
		cmd.Process.Kill()
	}()

	for part, want := range map[int]string{1: "35", 2: "46"} {
		_, err := stdin.Write([]byte(solveRequest(t, part, exampleInput)))
		require.NoError(t, err)

		require.True(t, waitForLine(scanner, 30*time.Second), "should receive solve response")

		var response struct {
			Success bool   `json:"success"`
			Type    string `json:"type"`
			Data    struct {
				Answer string `json:"answer"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &response))
		assert.True(t, response.Success, "solve should succeed")
		assert.Equal(t, "solve", response.Type)
		assert.Equal(t, want, response.Data.Answer, "part %d", part)
	}
}

func TestServeIntegration_SolveError(t *testing.T) {
	cmd, stdin, scanner := startServe(t)
	defer func() {
		stdin.Close()
		cmd.Process.Kill()
	}()

	_, err := stdin.Write([]byte(solveRequest(t, 1, "seeds: none\n")))
	require.NoError(t, err)

	require.True(t, waitForLine(scanner, 30*time.Second), "should receive error response")

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &response))
	assert.False(t, response["success"].(bool))
	assert.True(t, strings.Contains(response["error"].(string), "invalid seeds line"))
}

func TestServeIntegration_CloseCommand(t *testing.T) {
	cmd, stdin, _ := startServe(t)

	_, err := stdin.Write([]byte(`{"type":"close","payload":{}}` + "\n"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		assert.NoError(t, err, "process should exit cleanly")
	case <-time.After(10 * time.Second):
		cmd.Process.Kill()
		t.Fatal("process did not exit in time after close command")
	}
}
