package seedregexp

func IsBundleID(id string) bool {
	return BundleID.MatchString(id)
}

func IsTeamID(id string) bool {
	return TeamID.MatchString(id)
}

func IsBuildNumber(n string) bool {
	return BuildNumber.MatchString(n)
}
