/*
Package status reports passes to the user.

	+-------------+      +--------------+
	|   Engine    | ---> |  UserLogger  |
	|  (Notices)  |      | (pterm text) |
	+-------------+      +------+-------+
	                            |
	                  +---------+---------+
	                  |                   |
	            +-----+-----+       +-----+-----+
	            |  Summary  |       |  Tables   |
	            +-----------+       +-----------+

🎯 Purpose:
- Turns engine notices into one readable line each
- Summarizes a preview or commit
- Renders preview and rule tables

Everything shown to the user is mirrored to zerolog at debug or info level.
*/
package status
