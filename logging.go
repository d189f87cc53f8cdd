// ./logging.go
package spk

/*
Package spk provides the package logger. Only the excerpt writer logs on
its own: a segment that cannot be copied is reported and skipped instead
of aborting the excerpt.

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.
*/

import (
	"io"

	"github.com/sirupsen/logrus"
)

// package logger, warnings only unless a caller raises the level
var log = logrus.New()

func init() {
	log.SetLevel(logrus.WarnLevel)
}

// SetLogLevel changes the package logger's level ("debug", "info",
// "warning", ...).
func SetLogLevel(level string) error {
	ll, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(ll)
	return nil
}

// SetLogOutput redirects the package logger.
func SetLogOutput(w io.Writer) {
	log.SetOutput(w)
}
