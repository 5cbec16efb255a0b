// Copyright 2025 sortof Authors
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

package main

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SORTOF"

// opt is a single command-line option that can also be set from the
// environment, e.g. SORTOF_COUNT for --count.
type opt struct {
	destP any
	flag  string
	dflt  any
	desc  string
}

// newViper returns a viper instance that reads SORTOF_* environment variables,
// with "-" in flag names mapped to "_".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return v
}

// bindOptions registers opts as flags on cmd and binds them into v. The
// destinations are seeded from v, so environment values apply unless the flag
// is given explicitly.
func bindOptions(v *viper.Viper, cmd *cobra.Command, opts []opt) error {
	flags := cmd.Flags()
	for _, o := range opts {
		switch destP := o.destP.(type) {
		case *string:
			flags.StringVar(destP, o.flag, o.dflt.(string), o.desc)
			if err := bindFlag(v, flags, o.flag); err != nil {
				return err
			}
			*destP = v.GetString(o.flag)
		case *int:
			flags.IntVar(destP, o.flag, o.dflt.(int), o.desc)
			if err := bindFlag(v, flags, o.flag); err != nil {
				return err
			}
			*destP = v.GetInt(o.flag)
		case *int64:
			flags.Int64Var(destP, o.flag, o.dflt.(int64), o.desc)
			if err := bindFlag(v, flags, o.flag); err != nil {
				return err
			}
			*destP = v.GetInt64(o.flag)
		case *time.Duration:
			flags.DurationVar(destP, o.flag, o.dflt.(time.Duration), o.desc)
			if err := bindFlag(v, flags, o.flag); err != nil {
				return err
			}
			*destP = v.GetDuration(o.flag)
		case *[]string:
			flags.StringSliceVar(destP, o.flag, o.dflt.([]string), o.desc)
			if err := bindFlag(v, flags, o.flag); err != nil {
				return err
			}
			*destP = v.GetStringSlice(o.flag)
		default:
			return errors.Errorf("option --%s: unsupported destination %T", o.flag, o.destP)
		}
	}
	return nil
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, name string) error {
	return errors.Wrapf(v.BindPFlag(name, flags.Lookup(name)), "binding --%s", name)
}
