package screens

import "fmt"

// Footer is the copyright line shown under both auth screens.
type Footer struct {
	SiteName string
}

func (f Footer) Render() string {
	return fmt.Sprintf("©2020 %s. All rights reserved.", f.SiteName)
}

func (f Footer) String() string { return f.Render() }
