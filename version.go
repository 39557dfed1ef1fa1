package main

// AppName names the binary, its lock file and its log files.
const AppName = "typist"

// Version represents the current version of the application
const Version = "1.0.0"
