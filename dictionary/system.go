package dictionary

import (
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/rs/zerolog/log"
)

// EnvDictPath is the environment variable checked before the default
// artifact directory.
const EnvDictPath = "GONORI_DICT_PATH"

// DefaultDictPath is used when EnvDictPath is unset.
const DefaultDictPath = "/usr/share/gonori/dict"

// SystemDictionary is the read-only, load-once view over the four compiled
// artifacts. It owns the mmap handles for ahocorasick.bin and matrix.bin and
// must be closed to release them.
type SystemDictionary struct {
	AC             *Automaton
	Tokens         *TokenDictionary
	Unknown        *UnknownTokenDictionary
	ConnectionCost *ConnectionCost

	acMap     mmap.MMap
	matrixMap mmap.MMap
}

// ResolveDictPath applies the GONORI_DICT_PATH-then-default resolution order.
func ResolveDictPath() string {
	if p := os.Getenv(EnvDictPath); p != "" {
		return p
	}
	return DefaultDictPath
}

// LoadSystemDictionary loads all four artifacts from dir.
func LoadSystemDictionary(dir string) (*SystemDictionary, error) {
	log.Info().Str("dir", dir).Msg("loading system dictionary")

	ac, acMap, err := LoadAutomaton(dir)
	if err != nil {
		return nil, err
	}
	tokens, err := LoadTokenDictionary(dir)
	if err != nil {
		acMap.Unmap()
		return nil, err
	}
	unknown, err := LoadUnknownTokenDictionary(dir)
	if err != nil {
		acMap.Unmap()
		return nil, err
	}
	cost, matrixMap, err := LoadConnectionCost(dir)
	if err != nil {
		acMap.Unmap()
		return nil, err
	}

	log.Info().
		Int("surfaces", tokens.Len()).
		Int("automaton_nodes", len(ac.Nodes)).
		Msg("system dictionary loaded")

	return &SystemDictionary{
		AC:             ac,
		Tokens:         tokens,
		Unknown:        unknown,
		ConnectionCost: cost,
		acMap:          acMap,
		matrixMap:      matrixMap,
	}, nil
}

// LoadSystemDictionaryFromEnv loads using ResolveDictPath.
func LoadSystemDictionaryFromEnv() (*SystemDictionary, error) {
	return LoadSystemDictionary(ResolveDictPath())
}

// Close releases the mmap handles backing AC and ConnectionCost. After
// Close, AC.Nodes/Edges/Outputs/PatternLens and ConnectionCost.Costs must
// not be read.
func (d *SystemDictionary) Close() error {
	var firstErr error
	if d.acMap != nil {
		if err := d.acMap.Unmap(); err != nil && firstErr == nil {
			firstErr = wrapf(IoFailure, err, "unmap automaton")
		}
	}
	if d.matrixMap != nil {
		if err := d.matrixMap.Unmap(); err != nil && firstErr == nil {
			firstErr = wrapf(IoFailure, err, "unmap matrix")
		}
	}
	return firstErr
}
