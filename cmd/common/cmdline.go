// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/goiroha/ledger/common"
)

type GlobalFlags struct {
	Flagset  *flag.FlagSet
	Debug    bool
	Validate bool
	Scheme   string
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	f.Flagset.BoolVar(
		&f.Validate,
		"validate",
		true,
		"check field values while building the transaction",
	)
	f.Flagset.StringVar(
		&f.Scheme,
		"scheme",
		common.Ed25519Sha3.Name(),
		"signature scheme (ed25519-sha3 or ed25519)",
	)
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	if _, ok := common.SchemeByName(f.Scheme); !ok {
		fmt.Printf("Invalid signature scheme specified: %s\n", f.Scheme)
		os.Exit(1)
	}
}

// SignatureScheme returns the scheme selected with -scheme
func (f *GlobalFlags) SignatureScheme() common.SignatureScheme {
	scheme, ok := common.SchemeByName(f.Scheme)
	if !ok {
		return common.Ed25519Sha3
	}
	return scheme
}

// Logger returns a text logger on stderr, at debug level when -debug is set
func (f *GlobalFlags) Logger() *slog.Logger {
	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	return slog.New(
		slog.NewTextHandler(
			os.Stderr,
			&slog.HandlerOptions{Level: level},
		),
	)
}
