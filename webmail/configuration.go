// SPDX-License-Identifier: GPL-3.0-or-later
package webmail

import (
	"fmt"
	"time"
)

type ConfigFunc func(c *configuration) error

func LearnConcurrency(concurrency int) ConfigFunc {
	return func(c *configuration) error {
		if concurrency < 1 {
			return fmt.Errorf("LearnConcurrency must be at least 1")
		}

		c.LearnConcurrency = concurrency
		return nil
	}
}

func ContactLimit(limit int) ConfigFunc {
	return func(c *configuration) error {
		if limit < 1 {
			return fmt.Errorf("ContactLimit must be at least 1")
		}

		c.ContactLimit = limit
		return nil
	}
}

// LoginLimits bounds login attempts per client address and per account.
func LoginLimits(perIp int, ipWindow time.Duration, perEmail int, emailWindow time.Duration) ConfigFunc {
	return func(c *configuration) error {
		if perIp < 1 || perEmail < 1 || ipWindow <= 0 || emailWindow <= 0 {
			return fmt.Errorf("login limits and windows must be positive")
		}

		c.LoginIpLimit, c.LoginIpWindow = perIp, ipWindow
		c.LoginEmailLimit, c.LoginEmailWindow = perEmail, emailWindow
		return nil
	}
}

// AdminRecheck sets how long an admin decision stays valid in a session.
func AdminRecheck(interval time.Duration) ConfigFunc {
	return func(c *configuration) error {
		if interval <= 0 {
			return fmt.Errorf("AdminRecheck must be positive")
		}

		c.AdminRecheck = interval
		return nil
	}
}

type configuration struct {
	LearnConcurrency int
	ContactLimit     int

	LoginIpLimit     int
	LoginIpWindow    time.Duration
	LoginEmailLimit  int
	LoginEmailWindow time.Duration

	AdminRecheck time.Duration
}

func defaultConfiguration() *configuration {
	return &configuration{
		LearnConcurrency: 4,
		ContactLimit:     100,
		LoginIpLimit:     5,
		LoginIpWindow:    time.Minute,
		LoginEmailLimit:  10,
		LoginEmailWindow: 5 * time.Minute,
		AdminRecheck:     15 * time.Minute,
	}
}
