package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Pipeline stages that keys are built for.
const (
	StageWords    = "words"
	StageLayout   = "layout"
	StageArtifact = "artifact"
)

// hashKey builds "<stage>:<sha256 of the JSON-encoded parts>".
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return stage + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data. Word lists, source documents and
// font files are identified by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// KeyStage returns the stage a key was built for, ignoring any scope
// prefix: "api:layout:3f…" yields "layout". Keys without a stage yield "".
func KeyStage(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return ""
	}
	rest := key[:i]
	return rest[strings.LastIndexByte(rest, ':')+1:]
}
