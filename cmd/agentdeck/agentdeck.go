package main

import (
	"k8s.io/klog/v2"

	"github.com/agentdeck/agentdeck/cmd/agentdeck/app/cmd"
)

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	cmd.Execute()
}
