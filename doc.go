// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package uhppoted-app-xlsx replaces the contents of a Google Sheets worksheet with a local spreadsheet file.

uhppoted-app-xlsx reads the active worksheet of an Excel workbook (Excel 97-2003 workbooks are first converted
with a headless LibreOffice), discards empty rows, limits the table to 1086 rows and 56 columns and then clears
the destination worksheet and writes the table as a single block. Only one upload runs at a time.

uhppoted-app-xlsx supports the following commands:

  - upload, to replace a Google Sheets worksheet with the contents of a local .xlsx, .xls, .tsv or .csv file
  - serve, to run a local web form for uploading files
  - list, to list the available spreadsheets or the worksheets in a spreadsheet
  - get, to download a Google Sheets worksheet as a TSV file
  - authorise, to authorise application access to Google Sheets with OAuth client credentials
  - config, to display the current configuration
  - version, to display the application version
*/
package xlsx
