/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/issuetools/youtrack-to-linear/cmd"

func main() {
	cmd.Execute()
}
