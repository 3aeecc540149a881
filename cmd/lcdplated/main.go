package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/lcdplate/pkg/env"
	fx "github.com/robotalks/lcdplate/pkg/framework"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	e := env.NewConfig().MustNewEnv()
	err := fx.NewRunner().
		HandleSignals().
		Go(fx.NamedRun("lcdplate", e.Service)).
		Wait()
	if cerr := e.Close(); cerr != nil {
		glog.Errorf("close display: %v", cerr)
	}
	if err != nil {
		glog.Exitln(err)
	}
}
