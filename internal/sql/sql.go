package sql

import "embed"

//go:embed migrations
var Migrations embed.FS

//go:embed queries/register_harvest_run.sql
var RegisterHarvestRun string

//go:embed queries/update_harvest_run_rows.sql
var UpdateHarvestRunRows string
