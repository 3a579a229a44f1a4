/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/basic-settings/mariner/cmd"

func main() {
	cmd.Execute()
}
