package main

import (
	"fmt"
	"os"
)

// @title                       Query Advisor API
// @version                     1.0
// @description                 Groups query logs into patterns and recommends indexes, flags anomalies and predicts execution time.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>", an HS256 JWT signed with ADVISOR_JWT_SECRET. Only enforced when the secret is set.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
