// Copyright 2025 The Rivaas Authors
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

package props_test

import (
	"fmt"

	"rivaas.dev/props"
)

func ExampleNew() {
	env, err := props.New(
		props.WithCommandLine([]string{"--server.port=9090"}),
		props.WithMap("defaults", map[string]any{
			"server.host": "localhost",
			"server.port": 8080,
		}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// The command-line source was registered first, so it wins.
	fmt.Println(env.String("server.host"))
	fmt.Println(env.Int("server.port"))
	// Output:
	// localhost
	// 9090
}

func ExampleEnvironment_Expand() {
	env := props.MustNew(
		props.WithMap("app", map[string]any{
			"db.host": "db.internal",
		}),
	)

	url, err := env.Expand("postgres://${db.host}:${db.port:5432}/app")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(url)
	// Output:
	// postgres://db.internal:5432/app
}

func ExampleEnvironment_AcceptsProfiles() {
	env := props.MustNew(
		props.WithActiveProfiles("dev"),
	)

	dev, _ := env.AcceptsProfiles("dev", "test")
	notProd, _ := env.AcceptsProfiles("!prod")
	fmt.Println(dev)
	fmt.Println(notProd)
	// Output:
	// true
	// true
}

func ExampleEnvironment_Bind() {
	type ServerConfig struct {
		Host    string `props:"host"`
		Port    int    `props:"port" default:"8080"`
		Workers int    `props:"workers" default:"4"`
	}

	env := props.MustNew(
		props.WithMap("conf", map[string]any{
			"server.host": "localhost",
			"server.port": "9090",
		}),
	)

	var conf struct {
		Server ServerConfig `props:"server"`
	}
	if err := env.Bind(&conf); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s:%d workers=%d\n", conf.Server.Host, conf.Server.Port, conf.Server.Workers)
	// Output:
	// localhost:9090 workers=4
}

func ExampleParseArgs() {
	args, err := props.ParseArgs([]string{
		"--server.port=8080",
		"--debug",
		"migrate",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(args.OptionNames())
	fmt.Println(args.NonOptionArgs())
	// Output:
	// [server.port debug]
	// [migrate]
}
