// Package workload holds the training load model of the dashboard.
//
// A Group is one training group with six weekly series over a 52-week
// school year that starts in September. Four series are distances in
// kilometres; sport and maxsus mark the weeks that contain sport games or
// special strength sessions.
//
// Groups come from YAML fixtures, either a directory (LoadDir), an S3 prefix
// (S3Source) or the bundled defaults (Default). The raw six-lines-per-week
// text export is converted with ParseRecords.
package workload
