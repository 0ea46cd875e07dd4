// miniodeploy deploys a pre-built MinIO container on a single host with a
// self-signed certificate. The heavy lifting (S3 semantics, TLS, erasure
// coding) lives in the MinIO image; this tool only automates the steps
// around it.
package main

import (
	"github.com/miniodeploy/miniodeploy/cmd"
)

func main() {
	cmd.Execute()
}
