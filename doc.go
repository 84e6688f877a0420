/*
 * doc.go, part of alphaparser.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package alphaparser turns the output of an AlphaFold prediction into two
files that are easier to look at: a molecular-viewer session with the best
model colored by pLDDT, and a heatmap of the predicted aligned error (PAE).

	**Packages**

    results: finds the prediction files in a results directory or in a
	zip, tar.gz or tar.zst archive of it, and removes the extracted copy
	when done.

    pae: reads the PAE JSON (flat residue1/residue2/distance arrays or the
	newer rows layout, optionally gzip or zstd compressed) into a gonum
	dense matrix, plus a few summary statistics.

    paeplot: draws the PAE matrix as a heatmap with a color bar, and saves
	it as a PNG.

    vis: runs PyMOL (or ChimeraX) to save a session with the structure
	colored by the pLDDT stored in its B-factor column.

    config, logger: settings (defaults, TOML file, ALPHAPARSER_* environment
	variables) and the shared zap logger.

The command line program is in cmd/alphaparser.

*/
package alphaparser
