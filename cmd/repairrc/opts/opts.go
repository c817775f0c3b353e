// Copyright 2025 walteh LLC
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
package opts

import (
	"github.com/walteh/repairrc/pkg/config"
	"github.com/walteh/repairrc/pkg/migration"
	"github.com/walteh/repairrc/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands. Config is set once
// flags are parsed, before any command runs. The console logger travels in
// the command context (log.FromContext).
type RootOpts struct {
	ConfigFile string
	Debug      bool

	Config *config.Config
}

// 🔗 Pipeline returns the configured pipeline. When names are given only those
// passes run, still in pipeline order.
func (o *RootOpts) Pipeline(names ...string) (rule.Pipeline, error) {
	if o.Config == nil {
		return nil, errors.New("configuration not loaded")
	}

	pl, err := o.Config.Pipeline(migration.Builtin())
	if err != nil {
		return nil, err
	}

	return pl.Select(names...)
}
